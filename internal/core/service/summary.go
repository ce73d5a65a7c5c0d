package service

import (
	"fmt"
	"net/netip"

	"github.com/ak7sky/cidrsum/internal/core"
	"github.com/ak7sky/cidrsum/internal/core/model"
	"go4.org/netipx"
)

var (
	errLoadInput      = "failed to load input"
	errLoadExclusions = "failed to load exclusions"
	errGroup          = "failed to group addresses"
)

type SummaryService struct {
	addrStorage core.AddrStorage
	newBktStore func() core.BucketStorage
}

func New(addrStorage core.AddrStorage, newBktStore func() core.BucketStorage) *SummaryService {
	return &SummaryService{
		addrStorage: addrStorage,
		newBktStore: newBktStore,
	}
}

// Summarize loads the input, drops excluded addresses and groups the rest.
func (srv *SummaryService) Summarize(req model.Request) (*model.Report, error) {
	maskLen, err := model.ValidateMaskLen(req.MaskLen)
	if err != nil {
		return nil, err
	}

	addrs, err := srv.addrStorage.Load(req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errLoadInput, err)
	}

	if req.ExcludePath != "" {
		exclusions, err := srv.addrStorage.LoadSet(req.ExcludePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errLoadExclusions, err)
		}
		addrs = exclude(addrs, exclusions)
	}

	return srv.Group(addrs, maskLen)
}

// Group counts sorted addresses per network. Buckets keep first-seen order.
func (srv *SummaryService) Group(addrs []netip.Addr, maskLen uint8) (*model.Report, error) {
	if _, err := model.ValidateMaskLen(int(maskLen)); err != nil {
		return nil, err
	}

	bktStorage := srv.newBktStore()
	for _, addr := range addrs {
		if err := bktStorage.Add(model.NetOf(addr, maskLen)); err != nil {
			return nil, fmt.Errorf("%s: %w", errGroup, err)
		}
	}

	buckets, err := bktStorage.List()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errGroup, err)
	}
	return model.NewReport(maskLen, buckets), nil
}

func exclude(addrs []netip.Addr, exclusions *netipx.IPSet) []netip.Addr {
	kept := make([]netip.Addr, 0, len(addrs))
	for _, addr := range addrs {
		if !exclusions.Contains(addr) {
			kept = append(kept, addr)
		}
	}
	return kept
}
