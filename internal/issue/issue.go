// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	PandocNotFoundId Id = iota + 1
	PDFEngineMissingId
	ExportFailedId
	OutputDirUnavailableId
	ConfigLoadFailedId
	InputMaterializeFailedId
	ShellNotFoundId
	InvalidFormatId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	pandocNotFoundIssue = &Issue{
		id: PandocNotFoundId,
		mdMsg: `
# Pandoc not found!

We tried every resolution strategy (your configured path, PATH, well-known
install locations, shell introspection) and could not find an executable
pandoc binary.

## Things you can try:
- See where the search looked and why each candidate was rejected:
~~~
$ docport doctor
~~~

- Install pandoc:
  - Linux: ` + "`sudo apt install pandoc`" + ` or ` + "`sudo dnf install pandoc`" + `
  - macOS: ` + "`brew install pandoc`" + `
  - Windows: ` + "`winget install pandoc`" + ` or download from https://pandoc.org/installing.html

- If pandoc is already installed somewhere unusual, point docport at it:
~~~
$ docport config init
# then set tool: { path: "/full/path/to/pandoc" } in the config file
~~~

- Verify what your shell sees:
~~~
$ which pandoc        # POSIX
$ where pandoc        # Windows
~~~`,
	}

	pdfEngineMissingIssue = &Issue{
		id: PDFEngineMissingId,
		mdMsg: `
# PDF engine missing!

Pandoc ran, but the engine it needs to produce PDF output is not installed.
Pandoc does not render PDF itself; it delegates to a LaTeX engine or an
HTML-to-PDF tool.

## Supported engines:
- **xelatex** / **lualatex** / pdflatex (TeX distributions)
- **wkhtmltopdf**
- **weasyprint**
- **prince**

## Things you can try:
- Install a TeX distribution:
  - Linux: ` + "`sudo apt install texlive-xetex`" + `
  - macOS: ` + "`brew install --cask mactex-no-gui`" + `
  - Windows: install MiKTeX from https://miktex.org

- Or install a lighter HTML-based engine:
~~~
$ sudo apt install wkhtmltopdf    # or: pip install weasyprint
~~~

- Then select it:
~~~
$ docport export notes.md --to pdf --engine wkhtmltopdf
~~~

- Or set it permanently in the config file:
~~~cue
tool: {
  pdf_engine: "wkhtmltopdf"
}
~~~`,
	}

	exportFailedIssue = &Issue{
		id: ExportFailedId,
		mdMsg: `
# Export failed!

Pandoc started but exited with an error that is not a missing tool or a
missing PDF engine.

## Common causes:
- Markup the target format cannot represent
- An output path that is not writable
- Extra arguments pandoc does not recognize

## Things you can try:
- Re-run with verbose mode to see the full pandoc stderr:
~~~
$ docport --verbose export notes.md
~~~

- Try the same conversion by hand to isolate the failing flag:
~~~
$ pandoc notes.md -o notes.pdf
~~~

- Check the extra_args value in your configuration`,
	}

	outputDirUnavailableIssue = &Issue{
		id: OutputDirUnavailableId,
		mdMsg: `
# Output directory unavailable!

The configured output directory could not be created, so the export was
written next to the source document instead.

## Things you can try:
- Check permissions on the configured directory's parent
- Point export.output_dir at a writable location:
~~~cue
export: {
  output_dir: "~/Documents/exports"
}
~~~

- Or clear it to always export next to the document:
~~~cue
export: {
  output_dir: ""
}
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the docport configuration file.

## Configuration file locations:
- Linux: ~/.config/docport/config.cue
- macOS: ~/Library/Application Support/docport/config.cue
- Windows: %APPDATA%\docport\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ docport config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
tool: {
  path: "pandoc"
  pdf_engine: "auto"
}

export: {
  format: "pdf"
  output_dir: ""
  extra_args: ""
  open_after: false
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	inputMaterializeFailedIssue = &Issue{
		id: InputMaterializeFailedId,
		mdMsg: `
# Could not stage the document!

docport writes the document text to a transient file in the system temp
directory before handing it to pandoc, and that write failed.

## Common causes:
- Temp directory is full or not writable
- TMPDIR/TEMP points at a directory that does not exist

## Things you can try:
- Check free space and permissions on your temp directory
- Point TMPDIR (POSIX) or TEMP (Windows) at a writable directory`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find a shell to wrap the converter invocation with.

## Shells we look for:
- Linux/macOS: $SHELL, bash, sh
- Windows: pwsh, powershell, cmd

## Things you can try:
- Install bash or another POSIX shell
- Set the SHELL environment variable`,
	}

	invalidFormatIssue = &Issue{
		id: InvalidFormatId,
		mdMsg: `
# Unknown export format!

The requested format is not one docport can produce.

## Supported formats:
- **pdf** (needs a PDF engine, see ` + "`docport doctor`" + `)
- **docx**
- **html**
- **epub**
- **odt**

## Example:
~~~
$ docport export notes.md --to docx
~~~`,
	}

	issues = map[Id]*Issue{
		pandocNotFoundIssue.Id():         pandocNotFoundIssue,
		pdfEngineMissingIssue.Id():       pdfEngineMissingIssue,
		exportFailedIssue.Id():           exportFailedIssue,
		outputDirUnavailableIssue.Id():   outputDirUnavailableIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		inputMaterializeFailedIssue.Id(): inputMaterializeFailedIssue,
		shellNotFoundIssue.Id():          shellNotFoundIssue,
		invalidFormatIssue.Id():          invalidFormatIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
