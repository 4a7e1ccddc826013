package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDefaultsComponentAndCategoryWhenUnset(t *testing.T) {
	ee := New(fmt.Errorf("boom")).Build()
	assert.Equal(t, ComponentUnknown, ee.GetComponent())
	assert.Equal(t, CategoryGeneric, ee.Category)
}

func TestBuildKeepsExplicitComponentCategoryAndContext(t *testing.T) {
	ee := New(fmt.Errorf("disk full")).
		Component("notestore").
		Category(CategoryDatabase).
		Context("path", "/tmp/notes.db").
		Build()

	assert.Equal(t, "notestore", ee.GetComponent())
	assert.Equal(t, CategoryDatabase, ee.Category)
	assert.Equal(t, "/tmp/notes.db", ee.GetContext()["path"])
}

func TestNewfFormatsLikeFmtErrorf(t *testing.T) {
	ee := Newf("model %s not found", "ggml-tiny.en.bin").Build()
	assert.Equal(t, "model ggml-tiny.en.bin not found", ee.Error())
}

func TestErrorAndUnwrapDelegateToWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("underlying failure")
	ee := New(wrapped).Build()

	assert.Equal(t, wrapped.Error(), ee.Error())
	assert.Equal(t, wrapped, ee.Unwrap())
}

func TestIsMatchesOnCategoryBetweenEnhancedErrors(t *testing.T) {
	a := New(fmt.Errorf("a")).Category(CategoryNotFound).Build()
	b := New(fmt.Errorf("b")).Category(CategoryNotFound).Build()
	c := New(fmt.Errorf("c")).Category(CategoryDatabase).Build()

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
}

func TestIsCategoryFindsAnEnhancedErrorInTheTree(t *testing.T) {
	ee := New(fmt.Errorf("note 7 not found")).Category(CategoryNotFound).Build()
	wrapped := fmt.Errorf("lookup failed: %w", ee)

	assert.True(t, IsCategory(wrapped, CategoryNotFound))
	assert.False(t, IsCategory(wrapped, CategoryDatabase))
}

func TestGetContextReturnsACopyNotTheLiveMap(t *testing.T) {
	ee := New(fmt.Errorf("x")).Context("key", "value").Build()

	snapshot := ee.GetContext()
	snapshot["key"] = "mutated"

	assert.Equal(t, "value", ee.GetContext()["key"])
}
