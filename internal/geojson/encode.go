package geojson

import (
	"encoding/json"

	"github.com/tessellab/region-bridge/internal/batch"
	"github.com/tessellab/region-bridge/internal/regions"
)

func (c Codec) marshal(v interface{}) (string, error) {
	var (
		data []byte
		err  error
	)
	if c.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeObject renders one object as a GeoJSON Feature.
func (c Codec) EncodeObject(o *regions.Object) (string, error) {
	f, err := c.objectToFeature(o)
	if err != nil {
		return "", err
	}
	return c.marshal(f)
}

// EncodeROI renders bare geometry with no classification or
// measurements. The plane triple is embedded in the geometry object
// when the codec is plane-aware.
func (c Codec) EncodeROI(r *regions.ROI) (string, error) {
	g, err := c.roiToGeometry(r, true)
	if err != nil {
		return "", err
	}
	return c.marshal(g)
}

type collectionJSON struct {
	Type     string         `json:"type"`
	Features []*featureJSON `json:"features"`
}

// EncodeCollection wraps the objects in a single FeatureCollection
// document. An empty input produces a valid empty collection. For
// large inputs prefer EncodeCollectionChunks: one document can exceed
// transport message or string limits.
func (c Codec) EncodeCollection(objects []*regions.Object) (string, error) {
	features := make([]*featureJSON, len(objects))
	for i, o := range objects {
		f, err := c.objectToFeature(o)
		if err != nil {
			return "", err
		}
		features[i] = f
	}
	return c.marshal(&collectionJSON{Type: "FeatureCollection", Features: features})
}

// EncodeCollectionChunks partitions the objects into groups of at
// most chunkSize and encodes each group as its own FeatureCollection
// document. Concatenating the decoded chunks in order reproduces the
// input order exactly.
func (c Codec) EncodeCollectionChunks(objects []*regions.Object, chunkSize int) ([]string, error) {
	chunks, err := batch.Partition(objects, chunkSize)
	if err != nil {
		return nil, err
	}
	return batch.MapOrdered(chunks, chunkEncodeThreshold, c.EncodeCollection)
}

// EncodeFeatureList renders each object as its own Feature document,
// in input order.
func (c Codec) EncodeFeatureList(objects []*regions.Object) ([]string, error) {
	return batch.MapOrdered(objects, featureListThreshold, c.EncodeObject)
}
