package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimitiveEquality(t *testing.T) {
	require.True(t, Int(32, true).Equals(Int(32, true)))
	require.False(t, Int(32, true).Equals(Int(64, true)))
	require.True(t, Error().Equals(Error()))
}

func TestAssignmentCompatible(t *testing.T) {
	require.True(t, AssignmentCompatible(Error(), Int(32, true)))
	require.True(t, AssignmentCompatible(Int(32, true), Error()))
	require.True(t, AssignmentCompatible(Bool(), Int(32, true)))
	require.True(t, AssignmentCompatible(Char(), Bool()))
	require.False(t, AssignmentCompatible(Int(32, true), Int(64, true)))

	voidPtr := NewPointer(Void(), false)
	intPtr := NewPointer(Int(32, true), false)
	require.True(t, AssignmentCompatible(voidPtr, intPtr))

	ref := NewReference(Int(32, true), RegionStack, false, true, "")
	require.False(t, AssignmentCompatible(intPtr, ref))
}

func TestReferenceCompatible(t *testing.T) {
	nonNull := NewReference(Int(32, true), RegionStack, false, true, "")
	nullable := NewReference(Int(32, true), RegionStack, true, true, "")
	require.True(t, AssignmentCompatible(nonNull, nullable), "widening non-null -> nullable")
	require.False(t, AssignmentCompatible(nullable, nonNull), "narrowing nullable -> non-null forbidden")

	wrongRegion := NewReference(Int(32, true), RegionHeap, false, true, "")
	require.False(t, AssignmentCompatible(nonNull, wrongRegion))
}

func TestStructNominalEquality(t *testing.T) {
	a := NewStruct("Point", false)
	b := NewStruct("Point", false)
	c := NewStruct("Vector", false)
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
}

func TestNewtypeIdentityEquality(t *testing.T) {
	a := NewNewtype("Meters", Int(32, true))
	b := NewNewtype("Meters", Int(32, true))
	require.False(t, a.Equals(b), "newtypes compare by identity, not structurally")
	require.True(t, a.Equals(a))
}
