package model

// Bucket counts the hosts that fall into one network.
type Bucket struct {
	Net   Net
	Hosts uint
}

func NewBucket(net Net) *Bucket {
	return &Bucket{Net: net}
}

func (bucket *Bucket) Add() {
	bucket.Hosts++
}

// Report is the ordered list of buckets with its totals.
type Report struct {
	MaskLen      uint8
	Buckets      []*Bucket
	TotalSubnets uint
	TotalHosts   uint
}

func NewReport(maskLen uint8, buckets []*Bucket) *Report {
	report := &Report{MaskLen: maskLen, Buckets: buckets}
	for _, bucket := range buckets {
		report.TotalSubnets++
		report.TotalHosts += bucket.Hosts
	}
	return report
}

// Request describes one summarization run.
type Request struct {
	InputPath   string
	ExcludePath string
	MaskLen     int
}
