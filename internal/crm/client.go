// Package crm pushes captured leads to the external CRM as a contact plus an
// associated deal.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medportal_backend/platform/config"
)

// contactToDealAssociation is the CRM's built-in "deal to contact"
// association type code.
const contactToDealAssociation = 3

// Client talks to a HubSpot-compatible CRM API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a CRM API client.
func NewClient(cfg config.CRMConfig) *Client {
	return &Client{
		baseURL: cfg.GetCRMBaseURL(),
		token:   cfg.GetCRMAccessToken(),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type objectRequest struct {
	Properties   map[string]string `json:"properties"`
	Associations []association     `json:"associations,omitempty"`
}

type association struct {
	To    associationTarget `json:"to"`
	Types []associationType `json:"types"`
}

type associationTarget struct {
	ID string `json:"id"`
}

type associationType struct {
	AssociationCategory string `json:"associationCategory"`
	AssociationTypeID   int    `json:"associationTypeId"`
}

type objectResponse struct {
	ID string `json:"id"`
}

// CreateContact creates a contact and returns its CRM object id.
func (c *Client) CreateContact(ctx context.Context, properties map[string]string) (string, error) {
	return c.createObject(ctx, "/crm/v3/objects/contacts", objectRequest{Properties: properties})
}

// CreateDeal creates a deal associated to an existing contact.
func (c *Client) CreateDeal(ctx context.Context, properties map[string]string, contactID string) (string, error) {
	return c.createObject(ctx, "/crm/v3/objects/deals", objectRequest{
		Properties: properties,
		Associations: []association{{
			To: associationTarget{ID: contactID},
			Types: []associationType{{
				AssociationCategory: "HUBSPOT_DEFINED",
				AssociationTypeID:   contactToDealAssociation,
			}},
		}},
	})
}

func (c *Client) createObject(ctx context.Context, path string, payload objectRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("crm create %s failed: status %d: %s", path, resp.StatusCode, string(data))
	}

	var parsed objectResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("crm response decode: %w", err)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("crm response missing object id")
	}
	return parsed.ID, nil
}
