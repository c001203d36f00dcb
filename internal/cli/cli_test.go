package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	folderr "github.com/tokenfold/tokenfold/internal/errors"
	"github.com/tokenfold/tokenfold/internal/license"
)

func TestRootCommandStructure(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "tokenfold", root.Use)

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"compress", "optimize", "ask", "cache", "stats", "license", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestLicenseVerifyCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	key := license.NewSigner(nil).Generate(license.PlanPremium, time.Now().AddDate(0, 1, 0))

	cmd := newLicenseVerifyCmd()
	cmd.SetArgs([]string{key})
	assert.NoError(t, cmd.Execute())
}

func TestLicenseVerifyCommandRejectsBadKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newLicenseVerifyCmd()
	cmd.SetArgs([]string{"FOLD-PREMIUM-20991231-AAAAAA"})
	err := cmd.Execute()
	require.Error(t, err)

	var fe *folderr.FoldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, folderr.ErrLicenseInvalid, fe.Code)
}

func TestLicenseSetCommandPersists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	key := license.NewSigner(nil).Generate(license.PlanPremium, time.Now().AddDate(0, 1, 0))

	set := newLicenseSetCmd()
	set.SetArgs([]string{key})
	require.NoError(t, set.Execute())

	verify := newLicenseVerifyCmd()
	verify.SetArgs([]string{})
	assert.NoError(t, verify.Execute())
}
