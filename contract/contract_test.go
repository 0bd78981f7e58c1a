package contract_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/verchain/chain"
	"github.com/sghaida/verchain/contract"
)

//
// -----------------------------------------------------------------------------
// Default ladder
// -----------------------------------------------------------------------------

// TestDefault_Ladder verifies the embedded ladder resolves as documented.
func TestDefault_Ladder(t *testing.T) {
	t.Parallel()

	c, err := contract.Default()
	require.NoError(t, err)
	assert.True(t, c.Sealed())
	assert.Equal(t, []chain.Tag{"v1", "v2", "v3"}, c.Versions())

	cases := []struct {
		tag      chain.Tag
		op       string
		provider chain.Tag
	}{
		{"v3", contract.OpFormatResponse, "v3"},
		{"v3", contract.OpFormatValidationErrors, "v1"},
		{"v2", contract.OpFormatResponse, "v1"},
		{"v2", contract.OpFormatValidationErrors, "v1"},
		{"v1", contract.OpFormatResponse, "v1"},
	}
	for _, tc := range cases {
		r, err := c.Trace(tc.tag, tc.op)
		require.NoError(t, err)
		assert.Equal(t, tc.provider, r.Provider, "%s %s", tc.tag, tc.op)
	}

	_, err = c.Resolve("v4", contract.OpFormatResponse)
	var unk chain.UnknownVersionError
	assert.True(t, errors.As(err, &unk))
}

// TestResponseFor_Bodies verifies the rendered bodies per version.
func TestResponseFor_Bodies(t *testing.T) {
	t.Parallel()

	c, err := contract.Default()
	require.NoError(t, err)

	render := func(v chain.Tag) string {
		f, err := contract.ResponseFor(c, v)
		require.NoError(t, err)
		b, err := json.Marshal(f(v, map[string]int{"n": 1}))
		require.NoError(t, err)
		return string(b)
	}

	assert.JSONEq(t, `{"data":{"n":1}}`, render("v1"))
	assert.JSONEq(t, `{"data":{"n":1}}`, render("v2"))
	assert.JSONEq(t, `{"data":{"n":1},"meta":{"version":"v3"}}`, render("v3"))
}

func TestValidationFor_Body(t *testing.T) {
	t.Parallel()

	c, err := contract.Default()
	require.NoError(t, err)

	f, err := contract.ValidationFor(c, "v3")
	require.NoError(t, err)

	errs := contract.ValidationErrors{}
	errs.Add("name", "The name field is required.")

	b, err := json.Marshal(f("v3", errs))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"The given data was invalid.","errors":{"name":["The name field is required."]}}`, string(b))

	b, err = json.Marshal(f("v1", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"The given data was invalid.","errors":{}}`, string(b))
}

//
// -----------------------------------------------------------------------------
// Build / Check
// -----------------------------------------------------------------------------

// TestBuild_CustomManifest verifies a file manifest can add a version reusing shipped implementations.
func TestBuild_CustomManifest(t *testing.T) {
	t.Parallel()

	doc := string(contract.DefaultManifest()) + `
  - tag: v4
    predecessor: v3
    overrides:
      formatResponse: response.v1
`
	path := filepath.Join(t.TempDir(), "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := contract.Build(path)
	require.NoError(t, err)
	assert.Equal(t, chain.Tag("v4"), c.Head())

	r, err := c.Trace("v4", contract.OpFormatValidationErrors)
	require.NoError(t, err)
	assert.Equal(t, []chain.Tag{"v4", "v3", "v2", "v1"}, r.Path)
}

// TestBuild_WrongImplementationType verifies Check rejects a mis-bound operation.
func TestBuild_WrongImplementationType(t *testing.T) {
	t.Parallel()

	doc := `
versions:
  - tag: v1
    overrides:
      formatResponse: validation.v1
      formatValidationErrors: validation.v1
`
	path := filepath.Join(t.TempDir(), "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := contract.Build(path)
	var wt chain.WrongTypeImplementationError
	require.True(t, errors.As(err, &wt))
	assert.Equal(t, contract.OpFormatResponse, wt.Operation)
}

func TestBuild_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := contract.Build(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalog_Names(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{contract.ResponseV1, contract.ResponseV3, contract.ValidationV1},
		contract.Catalog().Names())
}

//
// -----------------------------------------------------------------------------
// FromValidator
// -----------------------------------------------------------------------------

type signup struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"min=18,max=130"`
	Plan  string `json:"plan" validate:"oneof=free pro"`
	Code  string `json:"code" validate:"len=4"`
}

func jsonNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// TestFromValidator_Messages verifies every supported rule maps to a message.
func TestFromValidator_Messages(t *testing.T) {
	t.Parallel()

	v := validator.New()
	v.RegisterTagNameFunc(jsonNames)

	err := v.Struct(signup{Email: "not-an-email", Age: 12, Plan: "gold", Code: "1"})
	require.Error(t, err)

	errs, ok := contract.FromValidator(err)
	require.True(t, ok)
	assert.Equal(t, []string{"age", "code", "email", "name", "plan"}, errs.Fields())
	assert.Equal(t, 5, errs.Len())

	assert.Equal(t, []string{"The name field is required."}, errs["name"])
	assert.Equal(t, []string{"The email field must be a valid email address."}, errs["email"])
	assert.Equal(t, []string{"The age field must be at least 18."}, errs["age"])
	assert.Equal(t, []string{"The plan field must be one of: free, pro."}, errs["plan"])
	assert.Equal(t, []string{"The code field is invalid (len)."}, errs["code"])
}

func TestFromValidator_OtherErrors(t *testing.T) {
	t.Parallel()

	errs, ok := contract.FromValidator(errors.New("unexpected EOF"))
	assert.False(t, ok)
	assert.Nil(t, errs)
}
