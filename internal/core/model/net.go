package model

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
	"net/netip"
)

const (
	MaskLen16 uint8 = 16
	MaskLen24 uint8 = 24
)

// Net is an IPv4 network identified by its base address and mask length.
type Net struct {
	Addr    uint32
	MaskLen uint8
}

// NetOf returns the network of maskLen bits that ip belongs to.
func NetOf(ip netip.Addr, maskLen uint8) Net {
	return Net{Addr: AddrToUint32(ip) & CalcMask(maskLen), MaskLen: maskLen}
}

func (net Net) String() string {
	return fmt.Sprintf("%d.%d.%d.%d/%d",
		byte(net.Addr>>24), byte(net.Addr>>16), byte(net.Addr>>8), byte(net.Addr), net.MaskLen)
}

func CalcMask(maskLen uint8) uint32 {
	if maskLen == 0 {
		return 0
	}
	return bits.Reverse32(math.MaxUint32 >> (32 - maskLen))
}

// AddrToUint32 returns the big-endian value of an IPv4 address.
func AddrToUint32(ip netip.Addr) uint32 {
	octets := ip.As4()
	return binary.BigEndian.Uint32(octets[:])
}

// ValidateMaskLen accepts only the mask lengths the grouping supports: 16 and 24.
func ValidateMaskLen(maskLen int) (uint8, error) {
	switch maskLen {
	case int(MaskLen16):
		return MaskLen16, nil
	case int(MaskLen24):
		return MaskLen24, nil
	}
	return 0, fmt.Errorf("%w: prefix /%d, must be 16 or 24", ErrConfig, maskLen)
}
