package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	validate := newValidator()

	testCases := []struct {
		password string
		valid    bool
	}{
		{"Secret123!", true},
		{"aB3(aaaa", true},
		{"secret123!", false},
		{"SECRET123!", false},
		{"Secret!!!!", false},
		{"Secret1234", false},
		{"Secret123)", false},
		{"", false},
	}

	for _, tc := range testCases {
		err := validate.Var(tc.password, "password")
		if tc.valid {
			assert.NoError(t, err, tc.password)
		} else {
			assert.Error(t, err, tc.password)
		}
	}
}

func TestRegisterRequest_Validation(t *testing.T) {
	validate := newValidator()

	valid := registerRequest{
		Username:       "alice",
		Password:       "Secret123!",
		RepeatPassword: "Secret123!",
		profileRequest: profileRequest{
			FirstName: "Alice",
			LastName:  "Liddell",
			Email:     "alice@example.com",
		},
	}
	assert.NoError(t, validate.Struct(valid))

	mismatch := valid
	mismatch.RepeatPassword = "Secret123("
	err := validate.Struct(mismatch)
	if assert.Error(t, err) {
		errs := getValidationErrors(err, "")
		assert.Equal(t, []validationError{{Field: "repeat_password", Message: "passwords must match"}}, errs)
	}

	longPassword := valid
	longPassword.Password = "Aa1!" + strings.Repeat("x", 68)
	longPassword.RepeatPassword = longPassword.Password
	assert.NoError(t, validate.Struct(longPassword))

	longPassword.Password = "Aa1!" + strings.Repeat("x", 69)
	longPassword.RepeatPassword = longPassword.Password
	err = validate.Struct(longPassword)
	if assert.Error(t, err) {
		errs := getValidationErrors(err, "")
		assert.Equal(t, []validationError{{Field: "password", Message: "must be at most 72 bytes long"}}, errs)
	}

	// 39 runes but 74 bytes.
	multiByte := valid
	multiByte.Password = "Aa1!" + strings.Repeat("é", 35)
	multiByte.RepeatPassword = multiByte.Password
	assert.Error(t, validate.Struct(multiByte))

	shortWebsite := valid
	shortWebsite.Website = "http://a.b"
	assert.NoError(t, validate.Struct(shortWebsite))

	shortWebsite.Website = "http://a"
	assert.Error(t, validate.Struct(shortWebsite))
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}

		token, ok := bearerToken(r)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.token, token, tc.header)
	}
}
