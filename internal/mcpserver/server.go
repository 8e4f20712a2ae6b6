// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the catalog to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/starford/pasarela/internal/apperr"
	"github.com/starford/pasarela/internal/editor"
	"github.com/starford/pasarela/internal/models"
	"github.com/starford/pasarela/internal/normalize"
	"github.com/starford/pasarela/internal/showroom"
)

const formatURI = "pasarela://product-format"

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcp *server.MCPServer
	svc *showroom.Service
}

// New creates a new MCP server with all catalog tools registered.
func New(svc *showroom.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Pasarela",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_products",
		mcp.WithDescription("List catalog products in catalog order, archived included. "+
			"Optionally filter by category and status."),
		mcp.WithString("category", mcp.Description("women, men or accessory")),
		mcp.WithString("status", mcp.Description("available, made_to_order or archived")),
	), s.listProducts)

	s.mcp.AddTool(mcp.NewTool("get_product",
		mcp.WithDescription("Read one product by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Product id")),
	), s.getProduct)

	s.mcp.AddTool(mcp.NewTool("save_product",
		mcp.WithDescription("Create or update a product. Omit id to create. "+
			"On update only the fields passed are changed. "+
			"A new product without images gets the staged image paths. "+
			"Read the format first via get_product_format or the "+formatURI+" resource."),
		mcp.WithString("id", mcp.Description("Id of the product to update; empty creates a new one")),
		mcp.WithString("name", mcp.Description("Display name")),
		mcp.WithString("subtitle", mcp.Description("Tagline")),
		mcp.WithString("collection", mcp.Description("Collection")),
		mcp.WithString("category", mcp.Description("women, men or accessory")),
		mcp.WithString("materials", mcp.Description("Materials")),
		mcp.WithString("sizes", mcp.Description("Sizes")),
		mcp.WithString("technique", mcp.Description("Technique")),
		mcp.WithString("description", mcp.Description("Description")),
		mcp.WithString("status", mcp.Description("available, made_to_order or archived")),
		mcp.WithString("hours", mcp.Description("Artisan hours")),
		mcp.WithString("price_mode", mcp.Description("visible or hidden")),
		mcp.WithString("price_value", mcp.Description("Price amount")),
		mcp.WithString("price_currency", mcp.Description("Currency code")),
		mcp.WithString("images", mcp.Description("Image paths, one per line")),
	), s.saveProduct)

	s.mcp.AddTool(mcp.NewTool("delete_product",
		mcp.WithDescription("Delete a product. Nothing happens unless confirm is true."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Product id")),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to delete")),
	), s.deleteProduct)

	s.mcp.AddTool(mcp.NewTool("export_catalog",
		mcp.WithDescription("Return the catalog as products.json."),
	), s.exportCatalog)

	s.mcp.AddTool(mcp.NewTool("stage_image",
		mcp.WithDescription("Stage an image for the next bundle and return its asset path. "+
			"Accepts a base64 data URI or an http(s) URL."),
		mcp.WithString("url", mcp.Required(), mcp.Description("data: URI or http(s) URL")),
		mcp.WithString("filename", mcp.Description("File name; derived from the URL when empty")),
	), s.stageImage)

	s.mcp.AddTool(mcp.NewTool("list_images",
		mcp.WithDescription("List the staged images in bundle order."),
	), s.listImages)

	s.mcp.AddTool(mcp.NewTool("unstage_image",
		mcp.WithDescription("Remove a staged image by its index from list_images."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based staged index")),
	), s.unstageImage)

	s.mcp.AddTool(mcp.NewTool("bundle_images",
		mcp.WithDescription("Zip the staged images. Writes the archive to path when given, "+
			"otherwise returns it base64 encoded."),
		mcp.WithString("path", mcp.Description("Destination .zip file; its directory must exist")),
	), s.bundleImages)

	s.mcp.AddTool(mcp.NewTool("get_product_format",
		mcp.WithDescription("Returns the product format. Call this before saving products."),
	), s.getProductFormat)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Product Format",
			mcp.WithResourceDescription("Fields, enumerations and defaults of a catalog product."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readProductFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// optString returns the named argument or "" when absent.
func optString(req mcp.CallToolRequest, key string) string {
	v, err := req.RequireString(key)
	if err != nil {
		return ""
	}
	return v
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listProducts(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	products, err := s.svc.Products()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var wantCat models.Category
	if raw := optString(req, "category"); raw != "" {
		c, ok := normalize.LookupCategory(raw)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s", raw)), nil
		}
		wantCat = c
	}
	var wantStatus models.Status
	if raw := optString(req, "status"); raw != "" {
		st, ok := normalize.LookupStatus(raw)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown status: %s", raw)), nil
		}
		wantStatus = st
	}

	out := []models.Product{}
	for _, p := range products {
		if wantCat != "" && p.Category != wantCat {
			continue
		}
		if wantStatus != "" && p.Status != wantStatus {
			continue
		}
		out = append(out, p)
	}
	return jsonResult(out)
}

func (s *Server) getProduct(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.Product(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return jsonResult(p)
}

// formFields maps save_product arguments onto the form fields they set.
func formFields(f *editor.Form) map[string]*string {
	return map[string]*string{
		"name":           &f.Name,
		"subtitle":       &f.Subtitle,
		"collection":     &f.Collection,
		"category":       &f.Category,
		"materials":      &f.Materials,
		"sizes":          &f.Sizes,
		"technique":      &f.Technique,
		"description":    &f.Description,
		"status":         &f.Status,
		"hours":          &f.Hours,
		"price_mode":     &f.PriceMode,
		"price_value":    &f.PriceValue,
		"price_currency": &f.PriceCurrency,
		"images":         &f.Images,
	}
}

// argString renders an argument as form text. Lists become one entry per line.
func argString(v any) string {
	if list, ok := v.([]any); ok {
		lines := make([]string, 0, len(list))
		for _, e := range list {
			lines = append(lines, cast.ToString(e))
		}
		return strings.Join(lines, "\n")
	}
	return cast.ToString(v)
}

func (s *Server) saveProduct(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id := strings.TrimSpace(argString(args["id"]))

	var f editor.Form
	p, err := s.svc.Product(id)
	switch {
	case id != "" && err == nil:
		f = editor.FormFrom(p)
	case id != "" && !errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError(err.Error()), nil
	default:
		// A blank or unknown id creates a new product from the defaults.
		ev, err := s.svc.Create()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f = ev.Form
		f.ID = id
		if _, ok := args["images"]; !ok {
			imgs, err := s.svc.Images()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			f.Images = strings.Join(stagedPaths(imgs), "\n")
		}
	}

	for key, field := range formFields(&f) {
		if v, ok := args[key]; ok {
			*field = argString(v)
		}
	}
	saved, err := s.svc.Save(f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(saved)
}

func (s *Server) deleteProduct(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	confirm, err := req.RequireBool("confirm")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deleted, err := s.svc.Delete(id, editor.Always(confirm))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch {
	case !confirm:
		return mcp.NewToolResultText(fmt.Sprintf("not deleted: %s (confirm is false)", id)), nil
	case !deleted:
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) exportCatalog(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.svc.Export()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out.Data)), nil
}

func (s *Server) getProductFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ProductFormatContract), nil
}

func (s *Server) readProductFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     ProductFormatContract,
		},
	}, nil
}
