// Package validators holds custom go-playground validator tags shared by the
// request DTOs and domain models.
package validators
