package mem

import (
	"github.com/ak7sky/cidrsum/internal/core/model"
)

// BucketMemStorage keeps buckets in the order their networks were first added.
type BucketMemStorage struct {
	buckets map[model.Net]*model.Bucket
	order   []*model.Bucket
}

func NewBktMemStorage() *BucketMemStorage {
	return &BucketMemStorage{
		buckets: map[model.Net]*model.Bucket{},
	}
}

func (storage *BucketMemStorage) Add(net model.Net) error {
	bucket, found := storage.buckets[net]
	if !found {
		bucket = model.NewBucket(net)
		storage.buckets[net] = bucket
		storage.order = append(storage.order, bucket)
	}
	bucket.Add()
	return nil
}

func (storage *BucketMemStorage) List() ([]*model.Bucket, error) {
	list := make([]*model.Bucket, len(storage.order))
	copy(list, storage.order)
	return list, nil
}
