package blockstore

import (
	"context"
	"errors"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/volume"
	"github.com/nspcc-dev/neofs-blockstore/pkg/services/blockstore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Storage is a payload store served by the Server.
type Storage interface {
	// Write stores data under the given identifier and returns its offset.
	Write(id string, data []byte) (uint64, error)
	// Read returns data stored under the given identifier.
	Read(id string) ([]byte, error)
}

// Server is an entity that serves FileService on top of the Storage.
type Server struct {
	*cfg

	storage Storage
}

// Option of the Server's constructor.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.NewNop(),
	}
}

// New creates, initializes and returns new Server instance.
func New(s Storage, opts ...Option) *Server {
	c := defaultCfg()

	for _, opt := range opts {
		opt(c)
	}

	return &Server{
		cfg:     c,
		storage: s,
	}
}

// WithLogger returns option to set Server's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

var errEmptyID = status.Error(codes.InvalidArgument, "empty request ID")

// systemError converts storage errors not related to the request into gRPC
// statuses. Returns nil for request-level failures.
func systemError(err error) error {
	switch {
	case errors.Is(err, volume.ErrHandle):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, volume.ErrClosed):
		return status.Error(codes.Unavailable, err.Error())
	}
	return nil
}

// WriteData stores payload from the request. Storage failures are reported
// in the response body, only handle and availability problems result in gRPC
// error status.
func (s *Server) WriteData(_ context.Context, req *blockstore.WriteRequest) (*blockstore.WriteResponse, error) {
	if req.RequestID == "" {
		return nil, errEmptyID
	}

	off, err := s.storage.Write(req.RequestID, req.Data)
	if err != nil {
		if st := systemError(err); st != nil {
			s.log.Error("write request failed",
				zap.String("request_id", req.RequestID),
				zap.Error(err),
			)
			return nil, st
		}

		s.log.Warn("could not write payload",
			zap.String("request_id", req.RequestID),
			zap.Int("size", len(req.Data)),
			zap.Error(err),
		)

		return &blockstore.WriteResponse{
			RequestID:    req.RequestID,
			ErrorMessage: err.Error(),
		}, nil
	}

	return &blockstore.WriteResponse{
		RequestID: req.RequestID,
		Offset:    off,
		Success:   true,
	}, nil
}

// ReadData returns payload requested by identifier. Unknown identifier results
// in NotFound status, read failures are reported in the response body.
func (s *Server) ReadData(_ context.Context, req *blockstore.ReadRequest) (*blockstore.ReadResponse, error) {
	if req.RequestID == "" {
		return nil, errEmptyID
	}

	data, err := s.storage.Read(req.RequestID)
	if err != nil {
		if errors.Is(err, volume.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "request ID not found")
		}
		if st := systemError(err); st != nil {
			s.log.Error("read request failed",
				zap.String("request_id", req.RequestID),
				zap.Error(err),
			)
			return nil, st
		}

		s.log.Warn("could not read payload",
			zap.String("request_id", req.RequestID),
			zap.Error(err),
		)

		return &blockstore.ReadResponse{
			RequestID:    req.RequestID,
			ErrorMessage: err.Error(),
		}, nil
	}

	return &blockstore.ReadResponse{
		RequestID: req.RequestID,
		Data:      data,
		Success:   true,
	}, nil
}
