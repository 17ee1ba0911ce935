package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlexID_StringAndNumber(t *testing.T) {
	var f FlexID
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &f))
	require.Equal(t, FlexID("abc"), f)

	require.NoError(t, json.Unmarshal([]byte(`17`), &f))
	require.Equal(t, FlexID("17"), f)

	require.Error(t, json.Unmarshal([]byte(`{"x":1}`), &f))
}

func TestProfile_User_PrefersCurrentFieldNames(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 3,
		"email": "a@b.c",
		"name": "Current",
		"fullName": "Legacy",
		"phone": "111",
		"phoneNumber": "222",
		"role": "USER"
	}`), &p))

	u := p.User()
	require.Equal(t, "3", u.ID)
	require.Equal(t, "Current", u.Name)
	require.Equal(t, "111", u.Phone)
}

func TestProfile_User_FallsBackToLegacyFieldNames(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "u-5",
		"email": "a@b.c",
		"fullName": "Legacy Name",
		"phoneNumber": "555"
	}`), &p))

	u := p.User()
	require.Equal(t, "u-5", u.ID)
	require.Equal(t, "Legacy Name", u.Name)
	require.Equal(t, "555", u.Phone)
}

func TestUser_IsAdmin(t *testing.T) {
	var nilUser *User
	require.False(t, nilUser.IsAdmin())
	require.False(t, (&User{Role: RoleUser}).IsAdmin())
	require.False(t, (&User{Role: "admin"}).IsAdmin())
	require.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
