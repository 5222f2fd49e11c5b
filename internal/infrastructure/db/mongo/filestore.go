package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

const filesBucket = "invoice_files"

// FileStore stores invoice PDFs in a GridFS bucket. File ids are ObjectID
// hex strings, opaque to the rest of the system.
type FileStore struct {
	bucket *gridfs.Bucket
}

func NewFileStore(db *mongo.Database) (*FileStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(filesBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &FileStore{bucket: bucket}, nil
}

func (s *FileStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	objID, err := s.bucket.UploadFromStream(name, r, opts)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	return objID.Hex(), nil
}

func (s *FileStore) Open(ctx context.Context, fileID string) (io.ReadCloser, *ports.FileInfo, error) {
	objID, err := oid(fileID)
	if err != nil {
		return nil, nil, domain.ErrFileNotFound
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
	}
	stream, err := s.bucket.OpenDownloadStream(objID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, domain.ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("open file: %w", err)
	}

	file := stream.GetFile()
	info := &ports.FileInfo{
		Name:        file.Name,
		ContentType: "application/octet-stream",
		Length:      file.Length,
	}
	var meta struct {
		ContentType string `bson:"contentType"`
	}
	if len(file.Metadata) > 0 {
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil && meta.ContentType != "" {
			info.ContentType = meta.ContentType
		}
	}
	return stream, info, nil
}

func (s *FileStore) Delete(ctx context.Context, fileID string) error {
	objID, err := oid(fileID)
	if err != nil {
		return domain.ErrFileNotFound
	}
	if err := s.bucket.Delete(objID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return domain.ErrFileNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
