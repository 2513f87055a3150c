package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conn-castle/doc-layer/internal/profile"
)

func TestComputeAllowlist(t *testing.T) {
	tools := []string{"list_datasets", "get_dataset", "create_thing", "delete_thing"}

	t.Run("empty input yields empty sets", func(t *testing.T) {
		allow := ComputeAllowlist(profile.Training, nil)
		assert.Empty(t, allow.Librarian)
		assert.Empty(t, allow.Foundry)
	})

	t.Run("librarian never gets action tools", func(t *testing.T) {
		for _, p := range []profile.Profile{profile.Training, profile.Inference, profile.Data, profile.App} {
			allow := ComputeAllowlist(p, tools)
			assert.False(t, allow.Librarian["create_thing"], string(p))
			assert.False(t, allow.Librarian["delete_thing"], string(p))
			assert.True(t, allow.Librarian["list_datasets"], string(p))
		}
	})

	t.Run("inference denies foundry action tools", func(t *testing.T) {
		allow := ComputeAllowlist(profile.Inference, tools)
		assert.True(t, allow.Foundry["get_dataset"])
		assert.False(t, allow.Foundry["create_thing"])
	})

	t.Run("training allows foundry action tools", func(t *testing.T) {
		allow := ComputeAllowlist(profile.Training, tools)
		assert.True(t, allow.Foundry["create_thing"])
	})

	t.Run("unknown profile denies all", func(t *testing.T) {
		allow := ComputeAllowlist(profile.Unknown, tools)
		assert.Empty(t, allow.Librarian)
		assert.Empty(t, allow.Foundry)
	})

	t.Run("unrecognized profile uses unknown policy", func(t *testing.T) {
		allow := ComputeAllowlist(profile.Profile("bogus"), tools)
		assert.Empty(t, allow.Librarian)
		assert.Empty(t, allow.Foundry)
	})

	t.Run("duplicates tolerated", func(t *testing.T) {
		allow := ComputeAllowlist(profile.Data, []string{"get_dataset", "get_dataset"})
		assert.True(t, allow.Librarian["get_dataset"])
		assert.Len(t, allow.Librarian, 1)
	})

	t.Run("deterministic", func(t *testing.T) {
		a := ComputeAllowlist(profile.App, tools)
		b := ComputeAllowlist(profile.App, tools)
		assert.Equal(t, a, b)
	})
}

func TestIsReadOnlyTool(t *testing.T) {
	assert.True(t, isReadOnlyTool("list_models"))
	assert.True(t, isReadOnlyTool("Search_Docs"))
	assert.True(t, isReadOnlyTool("get"))
	assert.False(t, isReadOnlyTool("create_space"))
	assert.False(t, isReadOnlyTool("upload_file"))
	assert.False(t, isReadOnlyTool(""))
}
