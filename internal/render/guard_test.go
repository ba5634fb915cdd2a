package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardMarksRegion(t *testing.T) {
	n := Element("div", "comments")
	assert.False(t, n.StopPropagation)
	assert.Same(t, n, Guard(n))
	assert.True(t, n.StopPropagation)

	assert.Nil(t, Guard(nil))
}

func TestPropagates(t *testing.T) {
	post := Element("div", "post")
	comments := Guard(Element("div", "comments"))
	inner := Element("div", "comment")

	// A click inside the guarded region never reaches the post handler
	assert.False(t, Propagates([]*Node{post, comments, inner}))

	// A click outside it does
	items := Element("div", "items")
	assert.True(t, Propagates([]*Node{post, items}))

	assert.True(t, Propagates(nil))
	assert.True(t, Propagates([]*Node{nil, post}))
}
