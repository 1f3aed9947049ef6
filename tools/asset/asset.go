// Package asset implements the asset-library capability: category listing,
// catalog search, and asset download into the host's asset directory. The
// catalog abstracts a PolyHaven-style library; storage goes through afs so
// the asset directory may be local or remote.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/scenebridge/scenebridge/internal/conv"
	"github.com/scenebridge/scenebridge/protocol"
	"github.com/scenebridge/scenebridge/tool"
)

// Asset is one catalog entry.
type Asset struct {
	ID       string
	Name     string
	Type     string
	Category string
	// URL is where the payload lives; empty entries are catalog-only.
	URL string
}

// Config controls where downloads land.
type Config struct {
	// DownloadDir is an afs URL (plain paths work for the local disk).
	DownloadDir string
}

// Service serves the asset tools.
type Service struct {
	fs         afs.Service
	config     *Config
	categories map[string][]string
	catalog    []Asset
}

// New creates a service with the built-in catalog.
func New(config *Config) *Service {
	return &Service{
		fs:     afs.New(),
		config: config,
		categories: map[string][]string{
			"hdris":    {"outdoor", "indoor", "studio", "nature"},
			"textures": {"fabric", "wood", "metal", "concrete", "plastic"},
			"models":   {"furniture", "nature", "architecture", "props"},
		},
		catalog: []Asset{
			{ID: "concrete_wall_01", Name: "Concrete Wall 01", Type: "textures", Category: "concrete"},
			{ID: "wooden_floor_02", Name: "Wooden Floor 02", Type: "textures", Category: "wood"},
		},
	}
}

// AddAsset extends the catalog; call before serving starts.
func (s *Service) AddAsset(a Asset) {
	s.catalog = append(s.catalog, a)
}

// Register binds the asset tools.
func (s *Service) Register(registry *tool.Registry) {
	registry.Register("get_polyhaven_categories", s.listCategories)
	registry.Register("search_polyhaven_assets", s.search)
	registry.Register("download_polyhaven_asset", s.download)
	registry.Register("get_polyhaven_status", statusHandler("PolyHaven integration is enabled"))
	registry.Register("get_hyper3d_status", statusHandler("Hyper3D integration is not configured"))
	registry.Register("get_sketchfab_status", statusHandler("Sketchfab integration is not configured"))
}

func statusHandler(status string) func(map[string]any) (protocol.Response, error) {
	return func(map[string]any) (protocol.Response, error) {
		return protocol.Response{"status": status}, nil
	}
}

func (s *Service) listCategories(params map[string]any) (protocol.Response, error) {
	assetType := conv.AsString(params["asset_type"], "hdris")
	categories, ok := s.categories[assetType]
	if !ok {
		categories = []string{}
	}
	return protocol.Response{"categories": categories}, nil
}

func (s *Service) search(params map[string]any) (protocol.Response, error) {
	assetType := conv.AsString(params["asset_type"], "all")
	categories := conv.AsString(params["categories"], "")
	var matches []any
	for _, a := range s.catalog {
		if assetType != "all" && a.Type != assetType {
			continue
		}
		if categories != "" && !strings.Contains(categories, a.Category) {
			continue
		}
		matches = append(matches, map[string]any{
			"id":       a.ID,
			"name":     a.Name,
			"type":     a.Type,
			"category": a.Category,
		})
	}
	if matches == nil {
		matches = []any{}
	}
	return protocol.Response{"assets": matches}, nil
}

// download copies the asset payload into the download directory. Catalog
// entries without a source URL get a placeholder payload so texture
// application can proceed against a real file path.
func (s *Service) download(params map[string]any) (protocol.Response, error) {
	assetID := conv.AsString(params["asset_id"], "")
	if assetID == "" {
		return nil, fmt.Errorf("Missing required parameter: asset_id")
	}
	entry, ok := s.find(assetID)
	if !ok {
		return nil, fmt.Errorf("Unknown asset: %s", assetID)
	}
	ctx := context.Background()
	var payload []byte
	if entry.URL != "" {
		data, err := s.fs.DownloadWithURL(ctx, entry.URL)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", assetID, err)
		}
		payload = data
	} else {
		payload = []byte(fmt.Sprintf("placeholder asset %s (%s/%s)\n", entry.ID, entry.Type, entry.Category))
	}
	dest := url.Join(s.config.DownloadDir, assetID+".asset")
	if err := s.fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("store %s: %w", assetID, err)
	}
	return protocol.Response{
		"status":   "Downloaded",
		"asset_id": assetID,
		"path":     dest,
	}, nil
}

func (s *Service) find(id string) (Asset, bool) {
	for _, a := range s.catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}
