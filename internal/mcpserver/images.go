package mcpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/pasarela/internal/showroom"
	"github.com/starford/pasarela/internal/storage"
)

type bundleResult struct {
	Name   string   `json:"name"`
	Path   string   `json:"path,omitempty"`
	Data   string   `json:"data,omitempty"`
	Size   int      `json:"size"`
	Images []string `json:"images"`
}

func (s *Server) listImages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imgs, err := s.svc.Images()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(imgs)
}

func (s *Server) unstageImage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	i, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	imgs, err := s.svc.Unstage(i)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unstage %d: %v", i, err)), nil
	}
	return jsonResult(imgs)
}

func (s *Server) bundleImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := strings.TrimSpace(optString(req, "path"))
	if target != "" && strings.ToLower(filepath.Ext(target)) != ".zip" {
		return mcp.NewToolResultError(fmt.Sprintf("path must end in .zip: %s", target)), nil
	}

	imgs, err := s.svc.Images()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := s.svc.Bundle(ctx, &buf); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := bundleResult{Name: s.svc.ArchiveName(), Size: buf.Len(), Images: stagedPaths(imgs)}
	if target != "" {
		if err := storage.WriteFile(target, buf.Bytes()); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res.Path = target
	} else {
		res.Data = base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return jsonResult(res)
}

func stagedPaths(imgs []showroom.StagedImage) []string {
	out := make([]string, len(imgs))
	for i, img := range imgs {
		out[i] = img.Path
	}
	return out
}
