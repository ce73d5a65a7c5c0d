package core

import (
	"net/netip"

	"github.com/ak7sky/cidrsum/internal/core/model"
	"go4.org/netipx"
)

type SummaryService interface {
	Summarize(req model.Request) (*model.Report, error)
	Group(addrs []netip.Addr, maskLen uint8) (*model.Report, error)
}

type AddrStorage interface {
	Load(path string) ([]netip.Addr, error)
	LoadSet(path string) (*netipx.IPSet, error)
}

type BucketStorage interface {
	Add(net model.Net) error
	List() ([]*model.Bucket, error)
}
