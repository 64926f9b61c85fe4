package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAntibodyHandler_UpdateClearsStability(t *testing.T) {
	h := setupHandlers(t)
	supervisor := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	antibody := testutil.CreateTestAntibody(t, h.db, h.lab, "CD38", "PerCP")
	stability := 30
	antibody.StabilityDays = &stability
	require.NoError(t, h.db.Save(antibody).Error)
	params := map[string]string{"id": antibody.ID.String()}

	t.Run("minus one clears", func(t *testing.T) {
		rr := serve(h.antibody.Update, newRequest(ctx, http.MethodPatch, "/api/antibodies/x",
			map[string]int{"stabilityDays": -1}, params))

		require.Equal(t, http.StatusOK, rr.Code)
		var dto domain.AntibodyDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Nil(t, dto.StabilityDays)
	})

	t.Run("below minus one is invalid", func(t *testing.T) {
		rr := serve(h.antibody.Update, newRequest(ctx, http.MethodPatch, "/api/antibodies/x",
			map[string]int{"stabilityDays": -2}, params))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Must be at least -1", decodeAPIError(t, rr).Errors["stabilityDays"])
	})
}
