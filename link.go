// Package propagation evaluates radio links between the nodes of a
// deployment using the empirical path-loss models of package pathloss.
package propagation

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/propagation/deployment"
	"github.com/wiless/propagation/pathloss"
	"github.com/wiless/vlib"
)

// LinkMetric summarises what a receiver sees from every transmitter.
// TxNodeIDs and TxNodesRxPower are sorted by decreasing received power.
type LinkMetric struct {
	RxNodeID       int
	BandwidthMHz   float64
	N0             float64 // noise power in dBm over the bandwidth
	TxNodeIDs      vlib.VectorI
	TxNodesRxPower vlib.VectorF
	BestRxPowerDbm float64
	BestTxNodeID   int
	RSSI           float64 // total received power including noise, dBm
	SINR           float64 // of the best server, dB
}

// Links reports the number of transmitters heard by the receiver.
func (l LinkMetric) Links() int {
	return len(l.TxNodeIDs)
}

type System struct {
	BandwidthMHz float64
	NoisePSDdBm  float64 // dBm/Hz
	// Seed derives the per-receiver random sources used by EvaluateAll for
	// models with shadowing.
	Seed int64
}

func NewSystem() System {
	var result System
	result.BandwidthMHz = 10.0
	result.NoisePSDdBm = -173.9
	return result
}

// N0 returns the thermal noise power in dBm over the system bandwidth.
func (w System) N0() float64 {
	return w.NoisePSDdBm + vlib.Db(w.BandwidthMHz*1e6)
}

// EvaluateLink computes the received power at node rxid from every active
// transmitter other than itself. Transmitters for which the model has no
// defined loss (NaN) are skipped. With no links the best server is -1 and
// the SINR is -Inf.
func (w System) EvaluateLink(nodes *deployment.DropSystem, model pathloss.Model, rxid int) (LinkMetric, error) {
	rxnode, ok := nodes.Node(rxid)
	if !ok {
		return LinkMetric{}, errors.Errorf("unknown receiver node %d", rxid)
	}

	var link LinkMetric
	link.RxNodeID = rxid
	link.BandwidthMHz = w.BandwidthMHz
	link.N0 = w.N0()

	for _, txnode := range nodes.Transmitters() {
		if txnode.ID == rxid {
			continue
		}
		rxPower := pathloss.RxPowerBetween(model, txnode.TxPowerDBm, txnode.Location, rxnode.Location)
		if math.IsNaN(rxPower) {
			log.Infof("%s[%d] : TxNode %d : No Link with %v", rxnode.Type, rxid, txnode.ID, model.Type())
			continue
		}
		link.TxNodeIDs.AppendAtEnd(txnode.ID)
		link.TxNodesRxPower.AppendAtEnd(rxPower)
	}

	if link.Links() == 0 {
		link.BestTxNodeID = -1
		link.BestRxPowerDbm = math.Inf(-1)
		link.RSSI = link.N0
		link.SINR = math.Inf(-1)
		return link, nil
	}

	rxLinr := vlib.InvDbF(link.TxNodesRxPower)
	totalrssi := vlib.Sum(rxLinr) + vlib.InvDb(link.N0)
	link.RSSI = vlib.Db(totalrssi)

	sorted, indx := link.TxNodesRxPower.Sorted2()
	link.TxNodeIDs = link.TxNodeIDs.At(indx.Flip()...)
	link.TxNodesRxPower = sorted.Flip()
	link.BestRxPowerDbm = link.TxNodesRxPower[0]
	link.BestTxNodeID = link.TxNodeIDs[0]

	best := vlib.InvDb(link.BestRxPowerDbm)
	link.SINR = link.BestRxPowerDbm - vlib.Db(totalrssi-best)

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"rx":   rxid,
			"best": link.BestTxNodeID,
			"rsrp": link.BestRxPowerDbm,
			"rssi": link.RSSI,
			"sinr": link.SINR,
		}).Debug("link evaluated")
	}
	return link, nil
}

// EvaluateAll evaluates every receiver of nodes concurrently, one goroutine
// per receiver. Models implementing pathloss.SourceCloner get a private
// random source per receiver seeded from w.Seed and the receiver ID, so
// results do not depend on scheduling. The result is ordered by receiver ID.
func (w System) EvaluateAll(nodes *deployment.DropSystem, model pathloss.Model) ([]LinkMetric, error) {
	receivers := nodes.Receivers()
	result := make([]LinkMetric, len(receivers))
	errs := make([]error, len(receivers))

	var wg sync.WaitGroup
	for i, rx := range receivers {
		wg.Add(1)
		go func(i, rxid int) {
			defer wg.Done()
			m := model
			if c, ok := model.(pathloss.SourceCloner); ok {
				m = c.WithSource(rand.New(rand.NewSource(w.Seed + int64(rxid))))
			}
			result[i], errs[i] = w.EvaluateLink(nodes, m, rxid)
		}(i, rx.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
