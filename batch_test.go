package docdown

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docdown/internal/docxtest"
)

func simpleDoc(text string) *docxtest.Builder {
	return docxtest.New(docxtest.Paragraph("", docxtest.Run("", text)))
}

func buildTree(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/src/a.docx", simpleDoc("alpha"))
	writeDoc(t, fs, "/src/sub/b.docx", docxtest.New(
		docxtest.Paragraph("", docxtest.Drawing("rId1", "pic")),
	).WithImage("rId1", "media/image1.gif", []byte("GIF89a")))
	writeDoc(t, fs, "/src/sub/deeper/c.DOCX", simpleDoc("gamma"))
	require.NoError(t, afero.WriteFile(fs, "/src/notes.txt", []byte("ignored"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/legacy.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/empty.docx", nil, 0o644))
	return fs
}

func TestConvert_Tree(t *testing.T) {
	fs := buildTree(t)

	st, err := Open("/src").Fs(fs).OutputDir("/out").Concurrency(3).Logger(quietLogger()).
		Convert(context.Background())
	require.NoError(t, err)

	r := st.Snapshot()
	assert.Equal(t, 5, r.TotalFiles)
	assert.ElementsMatch(t, []string{"/src/a.docx", "/src/sub/b.docx", "/src/sub/deeper/c.DOCX"}, r.Succeeded)
	require.Len(t, r.Failed, 2)
	for _, f := range r.Failed {
		assert.Contains(t, f.Message, "not a valid Word document")
		if f.Path == "/src/legacy.doc" {
			assert.Contains(t, f.Message, "legacy binary DOC format (.doc)")
			assert.Contains(t, f.Message, "Save it as .docx")
		} else {
			assert.Contains(t, f.Message, "File may be corrupted")
		}
	}
	assert.True(t, st.Failed())
	assert.Equal(t, 1, r.TotalImages)

	require.Len(t, r.Documents, 3)
	b := r.Documents[1]
	assert.Equal(t, "/src/sub/b.docx", b.Document)
	assert.Equal(t, "/out/sub/b.md", b.Output)
	assert.Equal(t, 1, b.ImageLinks)
	require.Len(t, b.Images, 1)
	assert.Equal(t, "b_image_1.gif", b.Images[0].File)

	assert.Equal(t, "alpha", readOutput(t, fs, "/out/a.md"))
	assert.Equal(t, "\n![pic](./images/b_image_1.gif)\n", readOutput(t, fs, "/out/sub/b.md"))
	assert.Equal(t, "gamma", readOutput(t, fs, "/out/sub/deeper/c.md"))

	exists, err := afero.Exists(fs, "/out/sub/images/b_image_1.gif")
	require.NoError(t, err)
	assert.True(t, exists)

	for _, name := range []string{"/out/legacy.md", "/out/empty.md", "/out/notes.md"} {
		exists, _ := afero.Exists(fs, name)
		assert.False(t, exists, name)
	}
}

func TestConvert_AllSucceed(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"one", "two", "three", "four"} {
		writeDoc(t, fs, "/src/"+name+".docx", simpleDoc(strings.ToUpper(name)))
	}

	st, err := Open("/src").Fs(fs).OutputDir("/out").Concurrency(2).Logger(quietLogger()).
		Convert(context.Background())
	require.NoError(t, err)

	r := st.Snapshot()
	assert.Equal(t, 4, r.TotalFiles)
	assert.Len(t, r.Succeeded, 4)
	assert.False(t, st.Failed())
	assert.Equal(t, "THREE", readOutput(t, fs, "/out/three.md"))
}

func TestConvert_SingleFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/src/deep/only.docx", simpleDoc("solo"))

	st, err := Open("/src/deep/only.docx").Fs(fs).OutputDir("/out").Logger(quietLogger()).
		Convert(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, st.Snapshot().TotalFiles)
	assert.False(t, st.Failed())
	assert.Equal(t, "solo", readOutput(t, fs, "/out/only.md"))
}

func TestConvert_SingleNonWordFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/readme.txt", []byte("x"), 0o644))

	st, err := Open("/src/readme.txt").Fs(fs).OutputDir("/out").Logger(quietLogger()).
		Convert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Snapshot().TotalFiles)
	assert.False(t, st.Failed())
}

func TestConvert_InvalidDocumentDoesNotStopRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a_broken.docx", []byte("PK\x03\x04garbage"), 0o644))
	writeDoc(t, fs, "/src/b_good.docx", simpleDoc("fine"))

	st, err := Open("/src").Fs(fs).OutputDir("/out").Logger(quietLogger()).
		Convert(context.Background())
	require.NoError(t, err)

	r := st.Snapshot()
	require.Len(t, r.Failed, 1)
	assert.Equal(t, "/src/a_broken.docx", r.Failed[0].Path)
	assert.Contains(t, r.Failed[0].Message, "document is unreadable")
	assert.Equal(t, []string{"/src/b_good.docx"}, r.Succeeded)
}

func TestConvert_Cancelled(t *testing.T) {
	fs := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := Open("/src").Fs(fs).OutputDir("/out").Logger(quietLogger()).Convert(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, st.Snapshot().TotalFiles)

	exists, _ := afero.Exists(fs, "/out/a.md")
	assert.False(t, exists)
}

func TestConvert_Errors(t *testing.T) {
	_, err := Open("").Convert(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = Open("/missing").Fs(afero.NewMemMapFs()).Convert(context.Background())
	assert.Error(t, err)
}

func TestCheckSignature(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/zip.docx", []byte("PK\x03\x04rest"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/short.docx", []byte("PK"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/text.docx", []byte("hello world"), 0o644))

	r := &run{opts: defaultOptions()}
	r.opts.fs = fs

	assert.NoError(t, r.checkSignature("/zip.docx"))
	assert.ErrorIs(t, r.checkSignature("/short.docx"), ErrNotWordDocument)
	assert.ErrorIs(t, r.checkSignature("/text.docx"), ErrNotWordDocument)
	assert.ErrorIs(t, r.checkSignature("/absent.docx"), ErrNotWordDocument)

	require.NoError(t, afero.WriteFile(fs, "/old.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0}, 0o644))
	err := r.checkSignature("/old.doc")
	assert.ErrorIs(t, err, ErrNotWordDocument)
	assert.ErrorIs(t, err, ErrLegacyWordDocument)
	assert.NotErrorIs(t, r.checkSignature("/text.docx"), ErrLegacyWordDocument)
}

// rejectWritesFs refuses to create files whose name contains one of match.
type rejectWritesFs struct {
	afero.Fs
	match []string
}

func (f rejectWritesFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		for _, m := range f.match {
			if strings.Contains(name, m) {
				return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
			}
		}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f rejectWritesFs) Create(name string) (afero.File, error) {
	return f.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

func TestConvert_ImageFailuresKeptWhenDocumentFails(t *testing.T) {
	base := afero.NewMemMapFs()
	writeDoc(t, base, "/src/pics.docx", docxtest.New(
		docxtest.Paragraph("", docxtest.Drawing("rId1", "pic")),
	).WithImage("rId1", "media/image1.png", testPNG(t)))
	fs := rejectWritesFs{Fs: base, match: []string{"_image_1", ".md"}}

	st, err := Open("/src").Fs(fs).OutputDir("/out").Logger(quietLogger()).
		Convert(context.Background())
	require.NoError(t, err)

	r := st.Snapshot()
	require.Len(t, r.Failed, 1)
	assert.Equal(t, "/src/pics.docx", r.Failed[0].Path)
	require.Len(t, r.FailedImages, 1)
	assert.Contains(t, r.FailedImages[0].Message, "Failed to extract image 1 from pics")
	assert.Empty(t, r.Documents)
}

// unreadableDirFs fails to open one directory.
type unreadableDirFs struct {
	afero.Fs
	dir string
}

func (f unreadableDirFs) Open(name string) (afero.File, error) {
	if name == f.dir {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func TestConvert_UnreadableDirectorySkipped(t *testing.T) {
	fs := unreadableDirFs{Fs: buildTree(t), dir: "/src/sub"}

	st, err := Open("/src").Fs(fs).OutputDir("/out").Logger(quietLogger()).
		Convert(context.Background())
	require.NoError(t, err)

	r := st.Snapshot()
	assert.Equal(t, 3, r.TotalFiles)
	assert.Equal(t, []string{"/src/a.docx"}, r.Succeeded)
	assert.Equal(t, "alpha", readOutput(t, fs, "/out/a.md"))
}

func TestConvert_UnreadableSourceDirectory(t *testing.T) {
	fs := unreadableDirFs{Fs: buildTree(t), dir: "/src"}

	_, err := Open("/src").Fs(fs).OutputDir("/out").Logger(quietLogger()).
		Convert(context.Background())
	assert.ErrorIs(t, err, os.ErrPermission)
}
