package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAllModules(t *testing.T) {
	r, err := CheckAllModules([]string{"eyJoZWxsbyI6IndvcmxkIn0.XKZueQ.6J2upr_oEShMpdzxTqnZ_kqYlUw"})
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, SecretFound, r.Kind)
	assert.Equal(t, "CHANGEME", r.Secret)
}

func TestCheckAllModulesNoMatch(t *testing.T) {
	r, err := CheckAllModules([]string{"nothing to see here"})
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestCheckAllModulesBadCustomFile(t *testing.T) {
	_, err := CheckAllModules([]string{"anything"}, "/definitely/not/a/file.txt")
	require.Error(t, err)
}

func TestCarveAllModules(t *testing.T) {
	resp := &Response{Cookies: map[string]string{"session": "eyJoZWxsbyI6IndvcmxkIn0.XKZueQ.6J2upr_oEShMpdzxTqnZ_kqYlUw"}}
	results, err := CarveAllModules(resp)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cookie: session", results[0].Location)
}

func TestHashcatAllModulesEmpty(t *testing.T) {
	assert.Empty(t, HashcatAllModules("no-such-product"))
}

func TestModuleNames(t *testing.T) {
	names := ModuleNames()
	assert.Contains(t, names, "jwt_hmac")
	assert.Contains(t, names, "aspnet_viewstate")
}
