// Package helpers provides test utility functions for the Guildmaster API.
//
// The helpers package contains common test utilities for building
// authenticated requests and asserting on API responses.
//
// # JWT Helpers
//
// Mint access tokens the way the identity provider would:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken("user:alice")
//	validator := jwtHelper.Service() // validates tokens it minted
//
// # Request Builders
//
// Build authenticated JSON requests:
//
//	req := helpers.NewRequest(t, http.MethodPost, "/v1/battles").
//	    WithAuth(jwtHelper, "user:alice").
//	    WithBody(body).
//	    Build()
//
// # Assertion Helpers
//
// Common test assertions:
//
//	helpers.AssertStatus(t, resp, http.StatusCreated)
//	helpers.AssertProblemDetails(t, resp, 422, model.ErrCodeValidation)
//	helpers.AssertRecordExists(t, db, "guild", guild.ID)
package helpers
