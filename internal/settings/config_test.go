package settings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/wordcycle/internal/domain"
	"codeberg.org/snonux/wordcycle/internal/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.ShowMeaningTimer)
	assert.Equal(t, 5, cfg.NextWordTimer)
	assert.True(t, cfg.AlwaysOnTop)
	assert.Empty(t, cfg.WordFile)
	assert.Equal(t, 3*time.Second, cfg.ShowMeaningDelay())
	assert.Equal(t, 5*time.Second, cfg.NextWordDelay())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Config
	}{
		{
			name:  "all keys",
			input: `{"showMeaningTimer": 1, "nextWordTimer": 0, "alwaysOnTop": false, "wordFile": "/tmp/n5.csv"}`,
			want:  Config{ShowMeaningTimer: 1, NextWordTimer: 0, AlwaysOnTop: false, WordFile: "/tmp/n5.csv"},
		},
		{
			name:  "missing keys use defaults",
			input: `{"nextWordTimer": 10}`,
			want:  Config{ShowMeaningTimer: 3, NextWordTimer: 10, AlwaysOnTop: true},
		},
		{
			name:  "wrong types use defaults",
			input: `{"showMeaningTimer": "7", "nextWordTimer": true, "alwaysOnTop": "yes", "wordFile": 42}`,
			want:  Config{ShowMeaningTimer: 3, NextWordTimer: 5, AlwaysOnTop: true},
		},
		{
			name:  "negative and fractional timers use defaults",
			input: `{"showMeaningTimer": -1, "nextWordTimer": 2.5}`,
			want:  Config{ShowMeaningTimer: 3, NextWordTimer: 5, AlwaysOnTop: true},
		},
		{
			name:  "integral float accepted",
			input: `{"showMeaningTimer": 4.0}`,
			want:  Config{ShowMeaningTimer: 4, NextWordTimer: 5, AlwaysOnTop: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want.ShowMeaningTimer, got.ShowMeaningTimer)
			assert.Equal(t, tt.want.NextWordTimer, got.NextWordTimer)
			assert.Equal(t, tt.want.AlwaysOnTop, got.AlwaysOnTop)
			assert.Equal(t, tt.want.WordFile, got.WordFile)
		})
	}
}

func TestParse_NotAnObject(t *testing.T) {
	for _, input := range []string{``, `not json`, `[1,2,3]`, `{"showMeaningTimer": }`} {
		cfg, err := Parse([]byte(input))
		assert.ErrorIs(t, err, domain.ErrParse, "input %q", input)
		assert.Equal(t, Default().ShowMeaningTimer, cfg.ShowMeaningTimer)
		assert.Empty(t, cfg.Unknown())
	}
}

func TestUnknownKeysSurviveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	testutil.CreateTestFile(t, path, []byte(`{
  "theme": "dark",
  "showMeaningTimer": 2,
  "window": {"x": 10, "y": 20},
  "recent": ["a.csv", "b.csv"]
}`))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ShowMeaningTimer)

	unknown := cfg.Unknown()
	assert.Equal(t, `"dark"`, unknown["theme"])
	assert.JSONEq(t, `{"x": 10, "y": 20}`, unknown["window"])
	assert.JSONEq(t, `["a.csv", "b.csv"]`, unknown["recent"])

	cfg.NextWordTimer = 9
	require.NoError(t, Save(path, cfg))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.ShowMeaningTimer)
	assert.Equal(t, 9, reloaded.NextWordTimer)
	assert.True(t, reloaded.AlwaysOnTop)

	again := reloaded.Unknown()
	assert.Equal(t, `"dark"`, again["theme"])
	assert.JSONEq(t, unknown["window"], again["window"])
	assert.JSONEq(t, unknown["recent"], again["recent"])
}

func TestEncode_WritesAllKnownKeys(t *testing.T) {
	data, err := Encode(Default())
	require.NoError(t, err)
	assert.JSONEq(t, `{"showMeaningTimer":3,"nextWordTimer":5,"alwaysOnTop":true,"wordFile":""}`, string(data))
	assert.Contains(t, string(data), "\n  \"showMeaningTimer\": 3", "output is indented")
}

func TestEncode_KeepsNonASCIIPaths(t *testing.T) {
	cfg := Default()
	cfg.WordFile = "/home/学生/単語.csv"

	data, err := Encode(cfg)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "/home/学生/単語.csv", got.WordFile)
}

func TestLoad_Errors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 3, cfg.ShowMeaningTimer)

	bad := filepath.Join(t.TempDir(), "config.json")
	testutil.CreateTestFile(t, bad, []byte("{broken"))
	cfg, err = Load(bad)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Equal(t, 5, cfg.NextWordTimer)
}

func TestSave_IOError(t *testing.T) {
	err := Save(testutil.BlockedPath(t, "config.json"), Default())
	assert.ErrorIs(t, err, domain.ErrIO)
}
