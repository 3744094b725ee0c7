package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() Expr {
	return &Binary{
		Op: And,
		Left: &Binary{
			Op:    Eq,
			Left:  &Identifier{Name: "dep"},
			Right: &Literal{Value: Text("EDDF")},
		},
		Right: &Unary{
			Op: Not,
			Operand: &Binary{
				Op:    In,
				Left:  &Identifier{Name: "arr"},
				Right: &Array{Elements: []Expr{&Literal{Value: Text("EDDS")}, &Identifier{Name: "dep"}}},
			},
		},
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "((dep == 'EDDF') and !(arr in ['EDDS', dep]))", sample().String())
	assert.Equal(t, "-3", (&Literal{Value: Int(-3)}).String())
	assert.Equal(t, "true", (&Literal{Value: Bool(true)}).String())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(sample(), sample()))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(sample(), nil))
	assert.False(t, Equal(&Literal{Value: Int(1)}, &Literal{Value: Text("1")}))
	assert.False(t, Equal(&Identifier{Name: "rfl"}, &Literal{Value: Text("rfl")}))
	assert.False(t,
		Equal(&Array{Elements: []Expr{&Literal{Value: Int(1)}}}, &Array{Elements: nil}))
	assert.False(t,
		Equal(&Binary{Op: Lt, Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}},
			&Binary{Op: Le, Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}}))
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, []string{"dep", "arr"}, Identifiers(sample()))
	assert.Nil(t, Identifiers(&Literal{Value: Bool(true)}))
}

func TestWalkSkipsChildren(t *testing.T) {
	var visited int
	Walk(sample(), func(e Expr) bool {
		visited++
		_, isUnary := e.(*Unary)
		return !isUnary
	})
	// and, ==, dep, 'EDDF', !
	assert.Equal(t, 5, visited)
}
