package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kwamena/ugrecover/internal/model"
)

func TestCan(t *testing.T) {
	assert.NoError(t, Can(model.RoleSudo, ManagePoints))
	assert.NoError(t, Can(model.RoleSudo, SubmitClaims))
	assert.NoError(t, Can(model.RoleOfficer, LogItems))
	assert.NoError(t, Can(model.RoleOfficer, ReviewClaims))
	assert.NoError(t, Can(model.RoleStudent, SubmitClaims))

	assert.ErrorIs(t, Can(model.RoleOfficer, ManagePoints), model.ErrForbidden)
	assert.ErrorIs(t, Can(model.RoleStudent, LogItems), model.ErrForbidden)
	assert.ErrorIs(t, Can(model.RoleStudent, ReviewClaims), model.ErrForbidden)
	assert.ErrorIs(t, Can("nobody", SubmitClaims), model.ErrForbidden)
}

func TestPointScope(t *testing.T) {
	assigned := int64(3)

	assert.NoError(t, PointScope(model.RoleSudo, nil, 3))
	assert.NoError(t, PointScope(model.RoleOfficer, &assigned, 3))

	err := PointScope(model.RoleOfficer, &assigned, 5)
	assert.True(t, errors.Is(err, model.ErrForbidden))

	// An unassigned officer has no point scope at all.
	assert.ErrorIs(t, PointScope(model.RoleOfficer, nil, 3), model.ErrForbidden)
}

func TestSelfScope(t *testing.T) {
	assert.NoError(t, SelfScope(model.RoleStudent, "Ama@st.ug.edu.gh", "ama@st.ug.edu.gh"))
	assert.NoError(t, SelfScope(model.RoleSudo, "anyone@st.ug.edu.gh", "admin@ug.edu.gh"))
	assert.ErrorIs(t,
		SelfScope(model.RoleStudent, "kofi@st.ug.edu.gh", "ama@st.ug.edu.gh"),
		model.ErrForbidden)
}
