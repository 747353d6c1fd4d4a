package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/piechart"
)

func TestParse(t *testing.T) {
	p := NewParser(DefaultDefaults())

	t.Run("full path", func(t *testing.T) {
		req, err := p.Parse("/400x200/sales.png/North:10;South:30.5/legend=off;significance=1;sort=on")
		require.NoError(t, err)

		assert.Equal(t, 400, req.Width)
		assert.Equal(t, 200, req.Height)
		assert.Equal(t, "sales.png", req.Title)
		assert.Equal(t, []piechart.Entry{
			{Label: "North", Value: 10},
			{Label: "South", Value: 30.5},
		}, req.Data)
		assert.False(t, req.Settings.ShowLegend)
		assert.True(t, req.Settings.SortDescending)
		assert.Equal(t, 1, req.Settings.Significance)
	})

	t.Run("defaults", func(t *testing.T) {
		req, err := p.Parse("A:1;B:2")
		require.NoError(t, err)

		assert.Equal(t, piechart.DefaultWidth, req.Width)
		assert.Equal(t, piechart.DefaultHeight, req.Height)
		assert.Empty(t, req.Title)
		assert.True(t, req.Settings.ShowLegend)
		assert.False(t, req.Settings.SortDescending)
		assert.Equal(t, 0, req.Settings.Significance)
	})

	t.Run("auto significance", func(t *testing.T) {
		req, err := p.Parse("300x300/A:1.5;B:2.25;C:3")
		require.NoError(t, err)
		assert.Equal(t, 2, req.Settings.Significance)
	})

	t.Run("negative significance means auto", func(t *testing.T) {
		req, err := p.Parse("A:1.125/significance=-1")
		require.NoError(t, err)
		assert.Equal(t, 3, req.Settings.Significance)
	})

	t.Run("data across segments keeps order", func(t *testing.T) {
		req, err := p.Parse("A:1/B:2;C:3")
		require.NoError(t, err)
		require.Len(t, req.Data, 3)
		assert.Equal(t, "A", req.Data[0].Label)
		assert.Equal(t, "C", req.Data[2].Label)
	})

	t.Run("duplicate labels are kept", func(t *testing.T) {
		req, err := p.Parse("A:1;A:2")
		require.NoError(t, err)
		assert.Len(t, req.Data, 2)
	})

	t.Run("settings values other than on are off", func(t *testing.T) {
		req, err := p.Parse("A:1/legend=yes;sort=1")
		require.NoError(t, err)
		assert.False(t, req.Settings.ShowLegend)
		assert.False(t, req.Settings.SortDescending)
	})

	t.Run("labels with spaces and symbols", func(t *testing.T) {
		req, err := p.Parse("Big apples & pears :42")
		require.NoError(t, err)
		assert.Equal(t, "Big apples & pears", req.Data[0].Label)
		assert.Equal(t, 42.0, req.Data[0].Value)
	})

	t.Run("empty data renders blank", func(t *testing.T) {
		req, err := p.Parse("/100x100/")
		require.NoError(t, err)
		assert.Empty(t, req.Data)
	})

	t.Run("decimal without integer part", func(t *testing.T) {
		req, err := p.Parse("A:.5")
		require.NoError(t, err)
		assert.Equal(t, 0.5, req.Data[0].Value)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		want  error
		token string
	}{
		{"garbage token", "300x200/hello", ErrUnrecognizedInput, "hello"},
		{"negative value", "A:-1", ErrUnrecognizedInput, "A:-1"},
		{"text value", "A:ten", ErrUnrecognizedInput, "A:ten"},
		{"unknown setting", "A:1/color=red", ErrUnrecognizedInput, "color=red"},
		{"bad significance", "A:1/significance=two", ErrUnrecognizedInput, "significance=two"},
		{"huge significance", "A:1/significance=99", ErrUnrecognizedInput, "significance=99"},
		{"two resolutions", "10x10/20x20/A:1", ErrUnrecognizedInput, "20x20"},
		{"two titles", "a.png/b.png/A:1", ErrUnrecognizedInput, "b.png"},
		{"bad resolution", "300x/A:1", ErrUnrecognizedInput, "300x"},
		{"too large", "5000x100/A:1", ErrTooLarge, ""},
		{"zero size", "0x100/A:1", piechart.ErrInvalidSize, ""},
	}
	p := NewParser(DefaultDefaults())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "error %v is not %v", err, tt.want)

			if tt.token != "" {
				var ie *InputError
				require.True(t, errors.As(err, &ie))
				assert.Equal(t, tt.token, ie.Token)
			}
		})
	}
}

func TestParseUnlimited(t *testing.T) {
	p := NewParser(Defaults{Width: 10, Height: 10})
	req, err := p.Parse("9000x10/A:1")
	require.NoError(t, err)
	assert.Equal(t, 9000, req.Width)
}

func TestInputErrorMessage(t *testing.T) {
	err := unrecognized("foo", "")
	assert.Equal(t, `unrecognized input: "foo"`, err.Error())

	err = unrecognized("a=b", "unknown setting")
	assert.Equal(t, `unrecognized input: "a=b" (unknown setting)`, err.Error())
}
