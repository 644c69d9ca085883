// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/bureau-foundation/cardpress/lib/asset"
	"github.com/bureau-foundation/cardpress/lib/fieldkey"
	"github.com/bureau-foundation/cardpress/lib/source"
	"github.com/bureau-foundation/cardpress/lib/typeface"
)

// resolveLeaf turns one terminal field into its final value, dispatched
// exhaustively on the winning key's capability set. Both entry points
// call this exact function; no leaf behavior exists in one scheduling
// mode and not the other.
func (r *resolver) resolveLeaf(ctx context.Context, path string, key fieldkey.Key, raw any, rc source.Context) (any, error) {
	// The only suspension points of a resolution are the asset byte
	// reads below; a cancelled run stops issuing them.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch typed := raw.(type) {
	case *asset.Asset:
		// Pre-resolved by a programmatic source; passes through.
		return typed, nil
	case []any:
		// Arrays resolve element-wise under the field's capabilities.
		resolved := make([]any, len(typed))
		for i, element := range typed {
			value, err := r.resolveLeaf(ctx, path, key, element, rc)
			if err != nil {
				return nil, err
			}
			resolved[i] = value
		}
		return resolved, nil
	}

	switch {
	case key.Caps.Uint:
		return parseUint(path, raw)
	case key.Caps.Number:
		return parseNumber(path, raw)
	case key.Caps.Asset():
		return r.resolveAsset(path, key.Caps, raw, rc)
	default:
		return raw, nil
	}
}

// resolveAsset reads the bytes behind a path-valued field and attaches
// the derived data its capabilities call for.
func (r *resolver) resolveAsset(path string, caps fieldkey.Caps, raw any, rc source.Context) (any, error) {
	name, ok := raw.(string)
	if !ok {
		return nil, &AssetLoadError{Path: path, File: fmt.Sprint(raw), Err: fmt.Errorf("asset path must be a string, got %T", raw)}
	}
	if rc == nil {
		return nil, &AssetLoadError{Path: path, File: name, Err: fmt.Errorf("source has no resolution context")}
	}

	data, err := rc.ReadFile(name)
	if err != nil {
		if !caps.Image {
			return nil, &AssetLoadError{Path: path, File: name, Err: err}
		}
		// The one silent-failure path in the system: an unreadable
		// image substitutes the built-in placeholder. The substitute
		// still goes through dimension decoding below.
		data = asset.Placeholder()
	}

	resolved := asset.New(name, data)
	if caps.Image {
		width, height, err := asset.DecodeDims(resolved.Bytes)
		if err != nil {
			return nil, &AssetDecodeError{Path: path, File: name, Err: err}
		}
		resolved.Width = width
		resolved.Height = height
	}
	if caps.Font {
		face, err := typeface.Parse(resolved.Bytes)
		if err != nil {
			return nil, &AssetDecodeError{Path: path, File: name, Err: err}
		}
		resolved.Face = face
	}
	return resolved, nil
}

// parseUint accepts the raw forms a decoder can produce for a
// non-negative integer.
func parseUint(path string, raw any) (uint64, error) {
	switch typed := raw.(type) {
	case int64:
		if typed < 0 {
			return 0, &NumericParseError{Path: path, Value: raw, Err: fmt.Errorf("value is negative")}
		}
		return uint64(typed), nil
	case float64:
		if typed < 0 || typed != math.Trunc(typed) {
			return 0, &NumericParseError{Path: path, Value: raw, Err: fmt.Errorf("value is not a non-negative integer")}
		}
		return uint64(typed), nil
	case string:
		n, err := strconv.ParseUint(typed, 10, 64)
		if err != nil {
			return 0, &NumericParseError{Path: path, Value: raw, Err: err}
		}
		return n, nil
	default:
		return 0, &NumericParseError{Path: path, Value: raw}
	}
}

// parseNumber accepts the raw forms a decoder can produce for a
// floating-point number.
func parseNumber(path string, raw any) (float64, error) {
	switch typed := raw.(type) {
	case int64:
		return float64(typed), nil
	case float64:
		return typed, nil
	case string:
		f, err := strconv.ParseFloat(typed, 64)
		if err != nil {
			return 0, &NumericParseError{Path: path, Value: raw, Err: err}
		}
		return f, nil
	default:
		return 0, &NumericParseError{Path: path, Value: raw}
	}
}
