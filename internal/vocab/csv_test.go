package vocab

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/wordcycle/internal/domain"
	"codeberg.org/snonux/wordcycle/internal/testutil"
)

func fields(entries []domain.Entry) [][3]string {
	out := make([][3]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, [3]string{e.Word, e.Reading, e.Meaning})
	}
	return out
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][3]string
		wantErr error
	}{
		{
			name:  "canonical header",
			input: "word,reading,meaning\n猫,ねこ,cat\n犬,いぬ,dog\n",
			want:  [][3]string{{"猫", "ねこ", "cat"}, {"犬", "いぬ", "dog"}},
		},
		{
			name:  "header in any order",
			input: "reading,word,meaning\nねこ,猫,cat\n",
			want:  [][3]string{{"猫", "ねこ", "cat"}},
		},
		{
			name:  "byte order mark",
			input: "\ufeffword,reading,meaning\n猫,ねこ,cat\n",
			want:  [][3]string{{"猫", "ねこ", "cat"}},
		},
		{
			name:  "extra columns ignored",
			input: "level,word,reading,meaning,notes\nN5,猫,ねこ,cat,pet\n",
			want:  [][3]string{{"猫", "ねこ", "cat"}},
		},
		{
			name:  "empty word rows skipped",
			input: "word,reading,meaning\n  ,ねこ,cat\n,,\n犬,いぬ,dog\n",
			want:  [][3]string{{"犬", "いぬ", "dog"}},
		},
		{
			name:  "short rows default to empty",
			input: "word,reading,meaning\n猫\n犬,いぬ\n",
			want:  [][3]string{{"猫", "", ""}, {"犬", "いぬ", ""}},
		},
		{
			name:  "fields trimmed",
			input: "word,reading,meaning\n  猫 , ねこ ,  cat\n",
			want:  [][3]string{{"猫", "ねこ", "cat"}},
		},
		{
			name:  "quoted comma",
			input: "word,reading,meaning\n食べる,たべる,\"to eat, to consume\"\n",
			want:  [][3]string{{"食べる", "たべる", "to eat, to consume"}},
		},
		{
			name:  "header only",
			input: "word,reading,meaning\n",
			want:  [][3]string{},
		},
		{
			name:    "missing meaning column",
			input:   "word,reading\n猫,ねこ\n",
			wantErr: domain.ErrParse,
		},
		{
			name:    "header names are case sensitive",
			input:   "Word,Reading,Meaning\n猫,ねこ,cat\n",
			wantErr: domain.ErrParse,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: domain.ErrParse,
		},
		{
			name:  "bare quote inside a field",
			input: "word,reading,meaning\n12\" ruler,,ruler\n猫,ねこ,cat\n",
			want:  [][3]string{{"12\" ruler", "", "ruler"}, {"猫", "ねこ", "cat"}},
		},
		{
			name:  "quoted text followed by more text",
			input: "word,reading,meaning\n犬,いぬ,dog\n猫,ねこ,\"cat\" (pet)\n",
			want:  [][3]string{{"犬", "いぬ", "dog"}, {"猫", "ねこ", "cat\" (pet)"}},
		},
		{
			name:  "unterminated quote runs to end of file",
			input: "word,reading,meaning\n\"猫,ねこ,cat\n",
			want:  [][3]string{{"猫,ねこ,cat", "", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Read(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fields(entries))
			for _, e := range entries {
				assert.NotEmpty(t, e.ID)
			}
		})
	}
}

func TestRead_DuplicateRowsAreDistinct(t *testing.T) {
	entries, err := Read(strings.NewReader("word,reading,meaning\n猫,ねこ,cat\n猫,ねこ,cat\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoad_ParseErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	testutil.WriteWordFile(t, path, "word,meaning", "猫,cat")

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "reading")
}

func TestWrite_Golden(t *testing.T) {
	entries := []domain.Entry{
		{ID: "1", Word: "猫", Reading: "ねこ", Meaning: "cat"},
		{ID: "2", Word: "食べる", Reading: "たべる", Meaning: "to eat, to consume"},
		{ID: "3", Word: "本", Reading: "", Meaning: "book"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	g := goldie.New(t)
	g.Assert(t, "words_csv", buf.Bytes())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "words.csv")
	original := []domain.Entry{
		{ID: "a", Word: "猫", Reading: "ねこ", Meaning: "cat"},
		{ID: "b", Word: "食べる", Reading: "たべる", Meaning: "to eat, to consume"},
		{ID: "c", Word: "\"引用\"", Reading: "いんよう", Meaning: "quote\nmultiline"},
		{ID: "d", Word: "本", Reading: "", Meaning: ""},
	}

	require.NoError(t, Save(path, original))
	testutil.AssertFileExists(t, path)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, fields(original), fields(loaded))

	// Saving again must produce byte-identical output.
	first, err := readAll(path)
	require.NoError(t, err)
	require.NoError(t, Save(path, loaded))
	testutil.AssertFileContent(t, path, first)
}

func TestSave_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	testutil.WriteWordFile(t, path, "word,reading,meaning", "古い,ふるい,old")

	require.NoError(t, Save(path, []domain.Entry{{Word: "新しい", Reading: "あたらしい", Meaning: "new"}}))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, [][3]string{{"新しい", "あたらしい", "new"}}, fields(loaded))

	matches, err := filepath.Glob(filepath.Join(dir, ".words-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSave_IOError(t *testing.T) {
	err := Save(testutil.BlockedPath(t, "words.csv"), []domain.Entry{{Word: "猫"}})
	assert.ErrorIs(t, err, domain.ErrIO)
}

func readAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}
