package main

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/banshee-data/agnite/internal/photometry"
)

// devPhotometry returns a canned radio-to-UV power law for any object so the
// SED views work without an external service. The slope varies by name.
var devPhotometry = photometry.ServiceFunc(func(_ context.Context, req photometry.Request) ([]photometry.Point, error) {
	h := fnv.New32a()
	h.Write([]byte(req.ObjectName))
	alpha := 0.4 + float64(h.Sum32()%60)/100

	pts := make([]photometry.Point, 0, 16)
	for logNu := 9.0; logNu <= 15.5; logNu += 0.5 {
		nu := math.Pow(10, logNu)
		pts = append(pts, photometry.Point{
			Frequency:   nu,
			FluxDensity: 10 * math.Pow(nu/1e9, -alpha),
		})
	}
	return pts, nil
})
