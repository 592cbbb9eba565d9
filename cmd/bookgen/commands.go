package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"bookforge/catalog"
	"bookforge/core"
	"bookforge/cover"
)

// Env is bound into every command's Run method.
type Env struct {
	Out       io.Writer
	Generator *catalog.Generator
}

// CatalogFlags select one reproducible catalog.
type CatalogFlags struct {
	Seed    string  `help:"Root seed" required:""`
	Locale  string  `help:"Locale code; unknown codes fall back to ${defaultLocale}" default:"${defaultLocale}"`
	Likes   float64 `help:"Average likes per book" default:"0"`
	Reviews float64 `help:"Average reviews per book" default:"0"`
}

func (f CatalogFlags) params() catalog.Params {
	return catalog.Params{
		Seed:       f.Seed,
		Locale:     f.Locale,
		AvgLikes:   f.Likes,
		AvgReviews: f.Reviews,
	}
}

type PageCmd struct {
	CatalogFlags `embed:""`

	Page   int    `help:"0-based page number" default:"0"`
	Count  int    `help:"Books per page" default:"20"`
	Format string `help:"Output format" enum:"json,csv" default:"json"`
}

func (c *PageCmd) Run(env *Env) error {
	books, err := env.Generator.GeneratePage(c.params(), catalog.Page{Number: c.Page, Size: c.Count})
	if err != nil {
		return err
	}
	if c.Format == "csv" {
		return catalog.WriteCSV(env.Out, books)
	}
	return writeJSON(env.Out, books)
}

type BookCmd struct {
	CatalogFlags `embed:""`

	Index int `help:"0-based book index" required:""`
}

func (c *BookCmd) Run(env *Env) error {
	book, err := env.Generator.GenerateBook(c.Index, c.params())
	if err != nil {
		return err
	}
	return writeJSON(env.Out, book)
}

type CoverCmd struct {
	Title  string `help:"Title printed on the cover" required:""`
	Author string `help:"Author printed on the cover" required:""`
	Seed   string `help:"Cover seed, e.g. a book's coverSeed" required:""`
	Width  int    `help:"Width in pixels" default:"120"`
	Height int    `help:"Height in pixels" default:"180"`
	Output string `short:"o" help:"PNG file to write" required:"" type:"path"`
}

func (c *CoverCmd) Run(env *Env) error {
	png, err := cover.Render(cover.Request{
		Title:  c.Title,
		Author: c.Author,
		Seed:   c.Seed,
		Width:  c.Width,
		Height: c.Height,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, png, 0o644); err != nil {
		return fmt.Errorf("write cover: %w", err)
	}
	fmt.Fprintf(env.Out, "Wrote %s (%dx%d, %s)\n", c.Output, c.Width, c.Height, core.FormatBytes(int64(len(png))))
	return nil
}

type LocalesCmd struct{}

func (c *LocalesCmd) Run(env *Env) error {
	reg := env.Generator.Locales()
	for _, code := range reg.Codes() {
		marker := ""
		if code == reg.Fallback() {
			marker = " (default)"
		}
		fmt.Fprintf(env.Out, "%s%s\n", code, marker)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
