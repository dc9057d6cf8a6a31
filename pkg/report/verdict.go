package report

import (
	"fmt"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
)

// Vulnerability names the dominant weakness of a network
type Vulnerability string

const (
	VulnerabilityCriticalHubs        Vulnerability = "critical_hubs"
	VulnerabilityHighImpactNodes     Vulnerability = "high_impact_nodes"
	VulnerabilityHighImpactBridges   Vulnerability = "high_impact_bridges"
	VulnerabilityDistributedModerate Vulnerability = "distributed_moderate"
	VulnerabilityLow                 Vulnerability = "low"
	VulnerabilityCriticalLinks       Vulnerability = "critical_links"
	VulnerabilityMinorBridges        Vulnerability = "minor_bridges"
	VulnerabilityNone                Vulnerability = "none"
)

// Concern grades the multi-node sweep
type Concern string

const (
	ConcernNone        Concern = "none"
	ConcernModerate    Concern = "moderate"
	ConcernSignificant Concern = "significant"
)

// Multi-node sweep thresholds on the worst observed component count
const (
	SignificantMultiFragments = 50
	ModerateMultiFragments    = 10
)

// Verdict is the narrative conclusion of a run
type Verdict struct {
	Primary      Vulnerability `json:"primary"`
	Headline     string        `json:"headline"`
	Detail       string        `json:"detail"`
	MultiConcern Concern       `json:"multi_concern"`
	MultiDetail  string        `json:"multi_detail,omitempty"`
}

// Judge picks the primary vulnerability from the sweep summaries. Node
// findings take precedence; bridges decide only when a network has none of
// the stronger node classes, or no articulation points at all.
func Judge(nodes, edges *KindSummary, multi *MultiSummary) Verdict {
	v := primaryVerdict(nodes, edges)
	v.MultiConcern = ConcernNone

	if multi == nil {
		return v
	}
	switch {
	case multi.Max > SignificantMultiFragments:
		v.MultiConcern = ConcernSignificant
		v.MultiDetail = fmt.Sprintf(
			"Simultaneous failure of just %d articulation points can fragment the network into up to %d components. Coordinated or cascading failures are the critical risk.",
			multi.SampleSize, multi.Max)
	case multi.Max > ModerateMultiFragments:
		v.MultiConcern = ConcernModerate
		v.MultiDetail = fmt.Sprintf(
			"Simultaneous failure of %d articulation points fragments the network into up to %d components.",
			multi.SampleSize, multi.Max)
	}
	return v
}

func primaryVerdict(nodes, edges *KindSummary) Verdict {
	if nodes.Total > 0 {
		switch {
		case nodes.Count(algorithms.SeverityCritical) > 0:
			return Verdict{
				Primary:  VulnerabilityCriticalHubs,
				Headline: "Critical hubs",
				Detail:   "Central nodes exist whose individual failure causes catastrophic fragmentation. Securing these hubs comes first.",
			}
		case nodes.Count(algorithms.SeverityHigh) > 0:
			return Verdict{
				Primary:  VulnerabilityHighImpactNodes,
				Headline: "High-impact nodes",
				Detail:   "Several nodes fragment the network significantly when they fail. Harden those specific nodes.",
			}
		case edges.Count(algorithms.SeverityHigh) > 0:
			return Verdict{
				Primary:  VulnerabilityHighImpactBridges,
				Headline: "High-impact bridges",
				Detail:   "The main weakness lies in specific links rather than nodes. Add redundancy around the key bridges.",
			}
		case nodes.Count(algorithms.SeverityModerate) > 0 || edges.Count(algorithms.SeverityModerate) > 0:
			return Verdict{
				Primary:  VulnerabilityDistributedModerate,
				Headline: "Distributed moderate fragility",
				Detail:   "No single point of failure is catastrophic, but moderate and low-impact weaknesses are widespread across nodes and links.",
			}
		default:
			return Verdict{
				Primary:  VulnerabilityLow,
				Headline: "Low",
				Detail:   "The network is structurally resilient to single node or link failures.",
			}
		}
	}

	if edges.Total > 0 {
		if edges.Count(algorithms.SeverityCritical) > 0 {
			return Verdict{
				Primary:  VulnerabilityCriticalLinks,
				Headline: "Critical links",
				Detail:   "Central links exist whose individual failure causes catastrophic fragmentation.",
			}
		}
		return Verdict{
			Primary:  VulnerabilityMinorBridges,
			Headline: "Bridges without major impact",
			Detail:   "The network contains bridges, but none causes major fragmentation alone.",
		}
	}

	return Verdict{
		Primary:  VulnerabilityNone,
		Headline: "Highly resilient",
		Detail:   "No articulation points or bridges were found.",
	}
}
