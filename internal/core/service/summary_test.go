package service

import (
	"errors"
	"fmt"
	"net/netip"
	"testing"

	"github.com/ak7sky/cidrsum/internal/core"
	"github.com/ak7sky/cidrsum/internal/core/model"
	"github.com/ak7sky/cidrsum/internal/core/storage/mem"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go4.org/netipx"
)

type mockAddrStorage struct {
	mock.Mock
}

func (mas *mockAddrStorage) Load(path string) ([]netip.Addr, error) {
	args := mas.Called(path)
	return args.Get(0).([]netip.Addr), args.Error(1)
}

func (mas *mockAddrStorage) LoadSet(path string) (*netipx.IPSet, error) {
	args := mas.Called(path)
	return args.Get(0).(*netipx.IPSet), args.Error(1)
}

type mockBucketStorage struct {
	mock.Mock
}

func (mbs *mockBucketStorage) Add(net model.Net) error {
	args := mbs.Called(net)
	return args.Error(0)
}

func (mbs *mockBucketStorage) List() ([]*model.Bucket, error) {
	args := mbs.Called()
	return args.Get(0).([]*model.Bucket), args.Error(1)
}

func newMemBktStore() core.BucketStorage {
	return mem.NewBktMemStorage()
}

func addrs(ss ...string) []netip.Addr {
	out := make([]netip.Addr, 0, len(ss))
	for _, s := range ss {
		out = append(out, netip.MustParseAddr(s))
	}
	return out
}

func ipSet(t *testing.T, ss ...string) *netipx.IPSet {
	t.Helper()
	var builder netipx.IPSetBuilder
	for _, addr := range addrs(ss...) {
		builder.Add(addr)
	}
	set, err := builder.IPSet()
	require.NoError(t, err)
	return set
}

type expBucket struct {
	key   string
	hosts uint
}

func requireBuckets(t *testing.T, expected []expBucket, report *model.Report) {
	t.Helper()
	require.Len(t, report.Buckets, len(expected))
	for i, exp := range expected {
		require.Equal(t, exp.key, report.Buckets[i].Net.String())
		require.Equal(t, exp.hosts, report.Buckets[i].Hosts)
	}
}

func TestGroup(t *testing.T) {
	testCases := []struct {
		name       string
		addrs      []netip.Addr
		maskLen    uint8
		expBuckets []expBucket
		expSubnets uint
		expHosts   uint
	}{
		{
			name:       "three ips in two /16",
			addrs:      addrs("10.0.0.1", "10.0.5.2", "10.1.0.1"),
			maskLen:    16,
			expBuckets: []expBucket{{"10.0.0.0/16", 2}, {"10.1.0.0/16", 1}},
			expSubnets: 2,
			expHosts:   3,
		},
		{
			name:       "same ips in /24",
			addrs:      addrs("10.0.0.1", "10.0.5.2", "10.1.0.1"),
			maskLen:    24,
			expBuckets: []expBucket{{"10.0.0.0/24", 1}, {"10.0.5.0/24", 1}, {"10.1.0.0/24", 1}},
			expSubnets: 3,
			expHosts:   3,
		},
		{
			name:       "duplicates counted individually",
			addrs:      addrs("192.168.1.1", "192.168.1.1", "192.168.1.2"),
			maskLen:    24,
			expBuckets: []expBucket{{"192.168.1.0/24", 3}},
			expSubnets: 1,
			expHosts:   3,
		},
		{
			name:       "empty input",
			addrs:      nil,
			maskLen:    16,
			expBuckets: nil,
			expSubnets: 0,
			expHosts:   0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			srv := New(&mockAddrStorage{}, newMemBktStore)
			report, err := srv.Group(tc.addrs, tc.maskLen)
			require.NoError(t, err)
			requireBuckets(t, tc.expBuckets, report)
			require.Equal(t, tc.expSubnets, report.TotalSubnets)
			require.Equal(t, tc.expHosts, report.TotalHosts)
			require.Equal(t, tc.maskLen, report.MaskLen)
		})
	}
}

func TestGroup_Invariants(t *testing.T) {
	input := addrs(
		"1.2.3.4", "1.2.3.5", "1.2.4.1", "1.3.0.0", "8.8.8.8", "8.8.4.4", "8.8.8.8", "200.1.1.1",
	)
	for _, maskLen := range []uint8{16, 24} {
		srv := New(&mockAddrStorage{}, newMemBktStore)
		report, err := srv.Group(input, maskLen)
		require.NoError(t, err)

		var sum uint
		distinct := map[model.Net]struct{}{}
		for _, addr := range input {
			distinct[model.NetOf(addr, maskLen)] = struct{}{}
		}
		for _, bkt := range report.Buckets {
			sum += bkt.Hosts
		}
		require.Equal(t, uint(len(input)), sum)
		require.Equal(t, sum, report.TotalHosts)
		require.Equal(t, uint(len(distinct)), report.TotalSubnets)
	}
}

func TestGroup_UnsupportedMaskLen(t *testing.T) {
	for _, maskLen := range []uint8{0, 8, 20, 32} {
		srv := New(&mockAddrStorage{}, newMemBktStore)
		report, err := srv.Group(addrs("10.0.0.1"), maskLen)
		require.Nil(t, report)
		require.True(t, errors.Is(err, model.ErrConfig))
	}
}

func TestGroup_StorageErr(t *testing.T) {
	bktStorage := &mockBucketStorage{}
	bktStorage.On("Add", mock.Anything).Return(errors.New("storage is broken"))
	srv := New(&mockAddrStorage{}, func() core.BucketStorage { return bktStorage })

	report, err := srv.Group(addrs("10.0.0.1"), 24)
	require.Nil(t, report)
	require.ErrorContains(t, err, "storage is broken")
	bktStorage.AssertNotCalled(t, "List")
}

func TestSummarize(t *testing.T) {
	t.Run("no exclusions", func(t *testing.T) {
		addrStorage := &mockAddrStorage{}
		addrStorage.On("Load", "in.txt").Return(addrs("10.0.0.1", "10.0.5.2", "10.1.0.1"), nil)
		srv := New(addrStorage, newMemBktStore)

		report, err := srv.Summarize(model.Request{InputPath: "in.txt", MaskLen: 16})

		require.NoError(t, err)
		requireBuckets(t, []expBucket{{"10.0.0.0/16", 2}, {"10.1.0.0/16", 1}}, report)
		require.Equal(t, uint(2), report.TotalSubnets)
		require.Equal(t, uint(3), report.TotalHosts)
		addrStorage.AssertNotCalled(t, "LoadSet", mock.Anything)
	})

	t.Run("with exclusions", func(t *testing.T) {
		addrStorage := &mockAddrStorage{}
		addrStorage.On("Load", "in.txt").Return(addrs("10.0.0.1", "10.0.0.2"), nil)
		addrStorage.On("LoadSet", "ex.txt").Return(ipSet(t, "10.0.0.1"), nil)
		srv := New(addrStorage, newMemBktStore)

		report, err := srv.Summarize(model.Request{InputPath: "in.txt", ExcludePath: "ex.txt", MaskLen: 24})

		require.NoError(t, err)
		requireBuckets(t, []expBucket{{"10.0.0.0/24", 1}}, report)
		require.Equal(t, uint(1), report.TotalSubnets)
		require.Equal(t, uint(1), report.TotalHosts)
	})

	t.Run("everything excluded", func(t *testing.T) {
		addrStorage := &mockAddrStorage{}
		addrStorage.On("Load", "in.txt").Return(addrs("10.0.0.1", "10.0.0.1"), nil)
		addrStorage.On("LoadSet", "ex.txt").Return(ipSet(t, "10.0.0.1"), nil)
		srv := New(addrStorage, newMemBktStore)

		report, err := srv.Summarize(model.Request{InputPath: "in.txt", ExcludePath: "ex.txt", MaskLen: 24})

		require.NoError(t, err)
		require.Empty(t, report.Buckets)
		require.Zero(t, report.TotalSubnets)
		require.Zero(t, report.TotalHosts)
	})

	t.Run("err: unsupported prefix checked before loading", func(t *testing.T) {
		addrStorage := &mockAddrStorage{}
		srv := New(addrStorage, newMemBktStore)

		_, err := srv.Summarize(model.Request{InputPath: "in.txt", MaskLen: 20})

		require.True(t, errors.Is(err, model.ErrConfig))
		addrStorage.AssertNotCalled(t, "Load", mock.Anything)
	})

	t.Run("err: load input", func(t *testing.T) {
		addrStorage := &mockAddrStorage{}
		loadErr := fmt.Errorf("%w: line 1 %q", model.ErrParse, "not-an-ip")
		addrStorage.On("Load", "in.txt").Return([]netip.Addr(nil), loadErr)
		srv := New(addrStorage, newMemBktStore)

		report, err := srv.Summarize(model.Request{InputPath: "in.txt", MaskLen: 24})

		require.Nil(t, report)
		require.True(t, errors.Is(err, model.ErrParse))
		require.ErrorContains(t, err, errLoadInput)
	})

	t.Run("err: load exclusions", func(t *testing.T) {
		addrStorage := &mockAddrStorage{}
		addrStorage.On("Load", "in.txt").Return(addrs("10.0.0.1"), nil)
		addrStorage.On("LoadSet", "ex.txt").Return((*netipx.IPSet)(nil), fmt.Errorf("%w: missing", model.ErrIO))
		srv := New(addrStorage, newMemBktStore)

		report, err := srv.Summarize(model.Request{InputPath: "in.txt", ExcludePath: "ex.txt", MaskLen: 24})

		require.Nil(t, report)
		require.True(t, errors.Is(err, model.ErrIO))
		require.ErrorContains(t, err, errLoadExclusions)
	})
}

func TestExclude(t *testing.T) {
	input := addrs("10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.2", "10.0.0.4")
	set := ipSet(t, "10.0.0.2", "10.9.9.9")

	once := exclude(input, set)
	require.Equal(t, addrs("10.0.0.1", "10.0.0.3", "10.0.0.4"), once)

	twice := exclude(once, set)
	require.Equal(t, once, twice)
	require.Len(t, input, 5)
}
