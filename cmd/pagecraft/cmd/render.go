package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joetifa2003/pagecraft"
)

// pageDef is the YAML shape of a page definition file. Collections are
// lists, not maps, so the definition controls emission order.
type pageDef struct {
	Title     string `yaml:"title"`
	Suffix    string `yaml:"suffix"`
	Separator string `yaml:"separator"`
	Author    string `yaml:"author"`
	Comment   string `yaml:"comment"`
	BodyID    string `yaml:"body_id"`
	BodyClass string `yaml:"body_class"`
	Doctype   string `yaml:"doctype"`
	Lang      string `yaml:"lang"`
	Canonical string `yaml:"canonical"`
	Favicon   string `yaml:"favicon"`

	Defaults map[string]any `yaml:"defaults"`

	Meta      []nameContentDef `yaml:"meta"`
	OpenGraph []nameContentDef `yaml:"opengraph"`
	Twitter   []nameContentDef `yaml:"twitter"`

	Stylesheets []stylesheetDef `yaml:"stylesheets"`
	Scripts     []scriptDef     `yaml:"scripts"`
	Content     []contentDef    `yaml:"content"`
}

type nameContentDef struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

type stylesheetDef struct {
	URL     string `yaml:"url"`
	Media   string `yaml:"media"`
	Preload bool   `yaml:"preload"`
}

type scriptDef struct {
	URL      string `yaml:"url"`
	Position string `yaml:"position"`
	Async    bool   `yaml:"async"`
}

type contentDef struct {
	HTML     string `yaml:"html"`
	Markdown string `yaml:"markdown"`
}

var (
	renderFile   string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a YAML page definition to an HTML document",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(renderFile)
		if err != nil {
			return fmt.Errorf("read page definition: %w", err)
		}

		var def pageDef
		if err := yaml.Unmarshal(data, &def); err != nil {
			return fmt.Errorf("parse page definition: %w", err)
		}

		doc, err := buildDocument(&def)
		if err != nil {
			return err
		}

		if renderOutput == "" || renderOutput == "-" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		}
		return os.WriteFile(renderOutput, []byte(doc), 0o644)
	},
}

func buildDocument(def *pageDef) (string, error) {
	doctype, err := pagecraft.ParseDoctype(def.Doctype)
	if err != nil {
		return "", err
	}

	options := []pagecraft.RendererOption{
		pagecraft.WithDoctype(doctype),
	}
	if def.Lang != "" {
		options = append(options, pagecraft.WithLang(def.Lang))
	}
	if def.Defaults != nil {
		options = append(options, pagecraft.WithDefaults(def.Defaults))
	}

	renderer, err := pagecraft.New(options...)
	if err != nil {
		return "", err
	}

	p := renderer.NewPage()

	if def.Title != "" {
		p.SetTitle(def.Title)
	}
	if def.Suffix != "" {
		p.SetTitleSuffix(def.Suffix)
	}
	if def.Separator != "" {
		p.SetTitleSeparator(def.Separator)
	}
	if def.Author != "" {
		p.SetAuthor(def.Author)
	}
	if def.Comment != "" {
		p.SetMetaComment(def.Comment)
	}
	if def.BodyID != "" {
		p.SetBodyID(def.BodyID)
	}
	if def.BodyClass != "" {
		p.SetBodyClass(def.BodyClass)
	}
	if def.Canonical != "" {
		p.SetCanonical(def.Canonical)
	}
	if def.Favicon != "" {
		p.SetFavicon(def.Favicon)
	}

	for _, m := range def.Meta {
		p.SetMetaTag(m.Name, m.Content)
	}
	for _, m := range def.OpenGraph {
		p.SetOpenGraph(m.Name, m.Content)
	}
	for _, m := range def.Twitter {
		p.SetTwitterCard(m.Name, m.Content)
	}
	for _, s := range def.Stylesheets {
		p.AddStyleSheet(s.URL, s.Media, s.Preload)
	}
	for _, s := range def.Scripts {
		p.AddScript(s.URL, pagecraft.Position(s.Position), s.Async)
	}
	for _, c := range def.Content {
		if c.Markdown != "" {
			p.AddMarkdown(c.Markdown)
		}
		if c.HTML != "" {
			p.AddContent(c.HTML)
		}
	}

	return p.Fetch()
}

func init() {
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "page.yaml", "page definition file")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "-", "output file (- for stdout)")
	rootCmd.AddCommand(renderCmd)
}
