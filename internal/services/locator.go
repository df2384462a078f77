package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

var ErrNoLocation = errors.New("no location reported")

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locator supplies the device position for an End Day record.
type Locator interface {
	Locate(ctx context.Context, req models.EndDayRequest) (Coordinates, error)
}

// DeviceLocator uses the fix the client sent with the request.
type DeviceLocator struct{}

func (DeviceLocator) Locate(ctx context.Context, req models.EndDayRequest) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	if req.Latitude == nil || req.Longitude == nil {
		return Coordinates{}, ErrNoLocation
	}
	c := Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return Coordinates{}, fmt.Errorf("coordinates out of range: %v,%v", c.Latitude, c.Longitude)
	}
	return c, nil
}

type located struct {
	c   Coordinates
	err error
}

// locate asks the locator under the configured deadline. Any failure,
// including the deadline, means the day ends without coordinates.
func (s *JobService) locate(ctx context.Context, jobID uuid.UUID, req models.EndDayRequest) (Coordinates, bool) {
	if s.locator == nil {
		return Coordinates{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.locateTimeout)
	defer cancel()

	result := make(chan located, 1)
	go func() {
		c, err := s.locator.Locate(ctx, req)
		result <- located{c: c, err: err}
	}()

	select {
	case r := <-result:
		if r.err != nil {
			if !errors.Is(r.err, ErrNoLocation) {
				log.Printf("Warning: end day %s: location unavailable: %v", jobID, r.err)
			}
			return Coordinates{}, false
		}
		return r.c, true
	case <-ctx.Done():
		log.Printf("Warning: end day %s: location lookup timed out after %s", jobID, s.locateTimeout)
		return Coordinates{}, false
	}
}
