package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchema_OrderAndNaming(t *testing.T) {
	fields := []Field{
		F(KindString, "leadCall", "callType"),
		F(KindInt, "leadCall", "reason", "id"),
		F(KindDateTime, "createdOn"),
		F(KindDate, "modifiedOn"),
	}

	schema, err := BuildSchema(fields, StateColumn)
	require.NoError(t, err)

	want := []Column{
		{Name: "state", DType: "varchar"},
		{Name: "leadCall_callType", DType: "varchar"},
		{Name: "leadCall_reason_id", DType: "bigint"},
		{Name: "createdOn", DType: "timestamp"},
		{Name: "modifiedOn", DType: "timestamp"},
	}
	assert.Equal(t, want, schema)
}

func TestBuildSchema_NoExtraColumns(t *testing.T) {
	schema, err := BuildSchema([]Field{F(KindFloat, "subtotal")})
	require.NoError(t, err)
	assert.Equal(t, []Column{{Name: "subtotal", DType: "double"}}, schema)
}

func TestBuildSchema_UnknownKindIsFatal(t *testing.T) {
	_, err := BuildSchema([]Field{F(Kind("decimal"), "total")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestBuildSchema_EmptyPathIsFatal(t *testing.T) {
	_, err := BuildSchema([]Field{{Kind: KindInt}})
	require.Error(t, err)
}
