// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated admin's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access admin information without depending on Gin.
type Identity interface {
	// AdminID returns the authenticated admin's ID.
	AdminID() uuid.UUID
	// Roles returns the admin's assigned roles.
	Roles() []string
	// HasRole checks if the admin has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the admin is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	adminID       uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) AdminID() uuid.UUID {
	return i.adminID
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if admin info is not present.
func GetIdentity(c *gin.Context) Identity {
	adminID, adminOK := c.Get(ContextAdminIDKey)
	roles, rolesOK := c.Get(ContextRolesKey)

	if !adminOK {
		return &identity{authenticated: false}
	}

	aid, ok := adminID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if rolesOK {
		roleList, _ = roles.([]string)
	}

	return &identity{
		adminID:       aid,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the admin is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
