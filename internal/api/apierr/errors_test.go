package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/auth"
)

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{model.NewValidationError("email", "Email and password cannot be empty."), http.StatusBadRequest, CodeValidationFailed},
		{model.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{model.ErrGameNotFound, http.StatusNotFound, CodeGameNotFound},
		{model.ErrDuplicateEmail, http.StatusConflict, CodeEmailExists},
		{fmt.Errorf("buy: %w", model.ErrAlreadyOwned), http.StatusConflict, CodeAlreadyOwned},
		{model.NewStoreError("login", errors.New("secret backend detail")), http.StatusInternalServerError, CodeStoreError},
		{auth.ErrInvalidSession, http.StatusUnauthorized, CodeUnauthorized},
		{NewInvalidRequestError("bad json"), http.StatusBadRequest, CodeInvalidRequest},
		{errors.New("surprise"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, tc.err)

		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, tc.status, Status(tc.err))
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "secret backend detail")
	}
}
