package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Asset paths relative to the static directory.
const (
	CSSAsset     = "css/site.css"
	JSAsset      = "js/site.js"
	FaviconAsset = "images/favicon.png"
)

var (
	assetVersions = map[string]string{}
	assetMu       sync.RWMutex
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(staticDir string) {
	versions := make(map[string]string, 3)
	for _, asset := range []string{CSSAsset, JSAsset, FaviconAsset} {
		version := computeFileHash(filepath.Join(staticDir, filepath.FromSlash(asset)))
		if version == "" {
			version = "1"
		}
		versions[asset] = version
		log.Printf("[INFO] Asset version initialized: %s=%s", asset, version)
	}

	assetMu.Lock()
	assetVersions = versions
	assetMu.Unlock()
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash for an asset, or "1" if unknown.
// ctx is unused; it keeps the signature in line with the other template helpers.
func GetAssetVersion(ctx context.Context, asset string) string {
	assetMu.RLock()
	defer assetMu.RUnlock()
	if version, ok := assetVersions[asset]; ok {
		return version
	}
	return "1"
}

// AssetURL returns the public URL of an asset with its version query.
func AssetURL(ctx context.Context, asset string) string {
	return "/static/" + asset + "?v=" + GetAssetVersion(ctx, asset)
}

// GetCSSVersion returns the stylesheet version hash for cache busting
func GetCSSVersion(ctx context.Context) string {
	return GetAssetVersion(ctx, CSSAsset)
}

// GetJSVersion returns the site script version hash for cache busting
func GetJSVersion(ctx context.Context) string {
	return GetAssetVersion(ctx, JSAsset)
}

// GetFaviconVersion returns the favicon version hash for cache busting
func GetFaviconVersion(ctx context.Context) string {
	return GetAssetVersion(ctx, FaviconAsset)
}
