package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseJSONValue_PreservesMappingOrder(t *testing.T) {
	src := `{"zeta":1,"alpha":{"b":2,"a":3},"mid":[1,"two",null,true]}`

	v, err := ParseJSONValue([]byte(src))
	require.NoError(t, err)
	require.Equal(t, KindMapping, v.Kind())

	keys := make([]string, 0, len(v.Members()))
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	// Rendering reproduces the source byte for byte.
	assert.Equal(t, src, v.String())
}

func TestParseJSONValue_KeepsNumberLiterals(t *testing.T) {
	v, err := ParseJSONValue([]byte(`{"a":1.50,"b":1e3,"c":42}`))
	require.NoError(t, err)

	members := v.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "1.50", members[0].Value.NumberLit())
	assert.Equal(t, "1e3", members[1].Value.NumberLit())
	assert.Equal(t, "42", members[2].Value.NumberLit())

	f, err := members[1].Value.Float()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, f)
}

func TestParseJSONValue_RejectsTrailingData(t *testing.T) {
	_, err := ParseJSONValue([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)
}

func TestValue_UnmarshalYAML(t *testing.T) {
	src := `
zeta: hello
alpha:
  flag: true
  count: 7
items:
  - 1
  - name
  - null
`
	var v Value
	require.NoError(t, yaml.Unmarshal([]byte(src), &v))
	require.Equal(t, KindMapping, v.Kind())

	members := v.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "zeta", members[0].Key)
	assert.Equal(t, KindString, members[0].Value.Kind())

	alpha := members[1].Value
	require.Equal(t, KindMapping, alpha.Kind())
	assert.Equal(t, KindBool, alpha.Members()[0].Value.Kind())
	assert.True(t, alpha.Members()[0].Value.Bool())
	assert.Equal(t, "7", alpha.Members()[1].Value.NumberLit())

	items := members[2].Value
	require.Equal(t, KindSequence, items.Kind())
	require.Len(t, items.Items(), 3)
	assert.Equal(t, KindNull, items.Items()[2].Kind())
}

func TestValue_CloneIsDeep(t *testing.T) {
	orig, err := ParseJSONValue([]byte(`{"nested":{"a":1},"list":[1,2]}`))
	require.NoError(t, err)

	clone := orig.Clone()
	clone.members[0].Value.members[0] = Member{Key: "mutated", Value: IntValue(99)}
	clone.members[1].Value.items[0] = StringValue("changed")

	assert.Equal(t, `{"nested":{"a":1},"list":[1,2]}`, orig.String())
}

func TestValue_Interface(t *testing.T) {
	v, err := ParseJSONValue([]byte(`{"n":2.5,"s":"x","b":false,"z":null,"l":[1]}`))
	require.NoError(t, err)

	got, ok := v.Interface().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2.5, got["n"])
	assert.Equal(t, "x", got["s"])
	assert.Equal(t, false, got["b"])
	assert.Nil(t, got["z"])
	assert.Equal(t, []any{1.0}, got["l"])
}

func TestValue_StringEscaping(t *testing.T) {
	v := MappingValue(Member{Key: `he"y`, Value: StringValue("a\nb")})
	assert.Equal(t, `{"he\"y":"a\nb"}`, v.String())
}
