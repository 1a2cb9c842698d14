package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tsawler/folio/model"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`

// buildDocx writes a minimal DOCX package with the given extra entries
// and returns its path.
func buildDocx(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	all := map[string]string{"[Content_Types].xml": contentTypes}
	for name, content := range entries {
		all[name] = content
	}
	for name, content := range all {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}
	return path
}

func docBody(inner string) string {
	return `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + inner + `</w:body></w:document>`
}

func TestOpen_MissingDocumentPart(t *testing.T) {
	path := buildDocx(t, nil)
	if _, err := Open(path); err == nil {
		t.Fatal("Open() succeeded on package without word/document.xml")
	}
}

func TestPageCount_FromAppProperties(t *testing.T) {
	path := buildDocx(t, map[string]string{
		"word/document.xml": docBody(`<w:p><w:r><w:t>hello</w:t></w:r></w:p>`),
		"docProps/app.xml":  `<Properties><Application>Microsoft Word</Application><Pages>5</Pages></Properties>`,
	})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	count, err := r.PageCount()
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 5 {
		t.Errorf("PageCount() = %d, want 5", count)
	}
}

func TestPageCount_FallbackToPageBreaks(t *testing.T) {
	body := docBody(`<w:p><w:r><w:t>one</w:t><w:br w:type="page"/><w:t>two</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>still two</w:t><w:br w:type="page"/></w:r></w:p>` +
		`<w:p><w:r><w:t>three</w:t></w:r></w:p>`)
	path := buildDocx(t, map[string]string{"word/document.xml": body})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	count, err := r.PageCount()
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("PageCount() = %d, want 3", count)
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.PageGeometry
	}{
		{
			name: "declared letter size",
			body: docBody(`<w:p/><w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`),
			want: model.Letter,
		},
		{
			name: "declared a4 landscape",
			body: docBody(`<w:p/><w:sectPr><w:pgSz w:w="16838" w:h="11906"/></w:sectPr>`),
			want: model.PageGeometry{Width: 841.9, Height: 595.3},
		},
		{
			name: "missing section defaults to letter",
			body: docBody(`<w:p/>`),
			want: model.Letter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := buildDocx(t, map[string]string{"word/document.xml": tt.body})
			r, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			got, err := r.PageSize(0)
			if err != nil {
				t.Fatalf("PageSize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PageSize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	path := buildDocx(t, map[string]string{
		"word/document.xml": docBody(`<w:p/>`),
		"docProps/core.xml": `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
 xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
<dc:title>Quarterly Report</dc:title>
<dc:creator>Ada Lovelace</dc:creator>
<dcterms:created>2024-03-01T09:30:00Z</dcterms:created>
<dcterms:modified>2024-03-02T10:00:00Z</dcterms:modified>
</cp:coreProperties>`,
		"docProps/app.xml": `<Properties><Application>Microsoft Word</Application></Properties>`,
	})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	meta, err := r.Metadata()
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if meta.Title != "Quarterly Report" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "Ada Lovelace" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.Application != "Microsoft Word" {
		t.Errorf("Application = %q", meta.Application)
	}
	wantCreated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	if !meta.Created.Equal(wantCreated) {
		t.Errorf("Created = %v, want %v", meta.Created, wantCreated)
	}
	if meta.Modified.IsZero() {
		t.Error("Modified should be set")
	}
}

func TestMetadata_MissingParts(t *testing.T) {
	path := buildDocx(t, map[string]string{"word/document.xml": docBody(`<w:p/>`)})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	meta, err := r.Metadata()
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if !meta.IsZero() {
		t.Errorf("Metadata() = %+v, want zero", meta)
	}
}

func TestBuildPageContents_RunFormatting(t *testing.T) {
	body := docBody(`<w:p>
<w:pPr><w:pStyle w:val="Heading1"/><w:spacing w:after="240"/></w:pPr>
<w:r><w:rPr><w:b/><w:sz w:val="28"/><w:color w:val="FF0000"/></w:rPr><w:t>Title</w:t></w:r>
</w:p>
<w:p><w:r><w:rPr><w:i/><w:b w:val="0"/></w:rPr><w:t xml:space="preserve">plain </w:t></w:r><w:r><w:t>text</w:t></w:r></w:p>`)
	path := buildDocx(t, map[string]string{"word/document.xml": body})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	pages, err := r.BuildPageContents()
	if err != nil {
		t.Fatalf("BuildPageContents() error = %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	page, ok := pages[0].(model.WordPage)
	if !ok {
		t.Fatalf("page type = %T, want WordPage", pages[0])
	}
	if len(page.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(page.Paragraphs))
	}

	heading := page.Paragraphs[0]
	if heading.StyleName != "Heading1" {
		t.Errorf("StyleName = %q, want Heading1", heading.StyleName)
	}
	if heading.SpacingAfterPt != 12 {
		t.Errorf("SpacingAfterPt = %v, want 12", heading.SpacingAfterPt)
	}
	if len(heading.Runs) != 1 {
		t.Fatalf("heading runs = %d, want 1", len(heading.Runs))
	}
	run := heading.Runs[0]
	if !run.Bold || run.SizePt != 14 {
		t.Errorf("run = %+v, want bold 14pt", run)
	}
	if run.Color == nil || run.Color.R != 1 || run.Color.G != 0 {
		t.Errorf("run color = %+v, want red", run.Color)
	}

	second := page.Paragraphs[1]
	if len(second.Runs) != 2 {
		t.Fatalf("second paragraph runs = %d, want 2", len(second.Runs))
	}
	if !second.Runs[0].Italic || second.Runs[0].Bold {
		t.Errorf("first run = %+v, want italic not bold", second.Runs[0])
	}
	if got := second.Text(); got != "plain text" {
		t.Errorf("Text() = %q, want %q", got, "plain text")
	}
	if page.Margins != model.DefaultMargins {
		t.Errorf("Margins = %+v, want defaults", page.Margins)
	}
}

func TestBuildPageContents_PageBreaks(t *testing.T) {
	body := docBody(`<w:p><w:r><w:t>one</w:t><w:br w:type="page"/><w:t>two</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>tail</w:t><w:br w:type="page"/></w:r></w:p>` +
		`<w:sectPr><w:pgMar w:top="1440" w:right="720" w:bottom="1440" w:left="720"/></w:sectPr>`)
	path := buildDocx(t, map[string]string{"word/document.xml": body})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	pages, err := r.BuildPageContents()
	if err != nil {
		t.Fatalf("BuildPageContents() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}

	first := pages[0].(model.WordPage)
	if got := first.Paragraphs[0].Text(); got != "one" {
		t.Errorf("page 1 text = %q, want %q", got, "one")
	}
	second := pages[1].(model.WordPage)
	if len(second.Paragraphs) != 2 {
		t.Fatalf("page 2 paragraphs = %d, want 2", len(second.Paragraphs))
	}
	if got := second.Paragraphs[0].Text(); got != "two" {
		t.Errorf("page 2 text = %q, want %q", got, "two")
	}
	third := pages[2].(model.WordPage)
	if len(third.Paragraphs) != 0 {
		t.Errorf("page 3 paragraphs = %d, want 0 (break at end of paragraph)", len(third.Paragraphs))
	}

	wantMargins := model.Margins{Top: 72, Right: 36, Bottom: 72, Left: 36}
	if first.Margins != wantMargins {
		t.Errorf("Margins = %+v, want %+v", first.Margins, wantMargins)
	}
}

func TestText(t *testing.T) {
	body := docBody(`<w:p><w:r><w:t>alpha</w:t><w:tab/><w:t>beta</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>gamma</w:t></w:r></w:p>`)
	path := buildDocx(t, map[string]string{"word/document.xml": body})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	text, err := r.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := "alpha\tbeta\ngamma\n"
	if text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}
