package handler

import (
	"custodia/internal/cases"
	"custodia/internal/identity"
	id "custodia/pkg/domain"
)

type createRequest struct {
	Title       string `json:"case_title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
}

func (r createRequest) command() (cases.CreateCommand, error) {
	cmd := cases.CreateCommand{Title: r.Title, Description: r.Description}
	if r.AssignedTo != "" {
		assignee, err := id.ParseUserID(r.AssignedTo)
		if err != nil {
			return cmd, err
		}
		cmd.AssignedTo = assignee
	}
	return cmd, nil
}

type publicCreateRequest struct {
	Title         string `json:"case_title"`
	Description   string `json:"description"`
	AssigneeEmail string `json:"assigned_to_email"`
	AssigneeName  string `json:"assigned_to_name"`
}

func (r publicCreateRequest) assigneeLookup() identity.Lookup {
	return identity.Lookup{Email: r.AssigneeEmail, Name: r.AssigneeName}
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type setStatusResponse struct {
	Status string `json:"status"`
}
