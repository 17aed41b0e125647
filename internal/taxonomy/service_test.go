package taxonomy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListIsSorted(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	for _, name := range []string{"Wallpaper", "Food", "Tools"} {
		_, err := svc.Add(ctx, name)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Food", list[0].Name)
	require.Equal(t, "Tools", list[1].Name)
	require.Equal(t, "Wallpaper", list[2].Name)
}

func TestReplaceAndDelete(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	tp, err := svc.Add(ctx, "Food")
	require.NoError(t, err)

	require.NoError(t, svc.Replace(ctx, tp.ID, "Furniture"))
	got, err := svc.Get(ctx, tp.ID)
	require.NoError(t, err)
	require.Equal(t, "Furniture", got.Name)

	require.NoError(t, svc.Delete(ctx, tp.ID))
	_, err = svc.Get(ctx, tp.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	// deleting again is a no-op
	require.NoError(t, svc.Delete(ctx, tp.ID))
}
