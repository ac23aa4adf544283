package state

import (
	"math/rand"

	"github.com/f-sartori-v/mobauto2-decomp/core/model"
)

// Candidates are the task sequences the master hands out when it has no
// real plan yet. "NUL" marks an empty assignment.
var Candidates = [][]string{
	{"NUL"},
	{"OUT"},
	{"RET"},
	{"CRG"},
	{"OUT", "RET"},
	{"RET", "OUT"},
	{"RET", "CRG"},
	{"OUT", "RET", "OUT"},
	{"OUT", "RET", "CRG"},
	{"RET", "OUT", "RET"},
	{"RET", "CRG", "OUT"},
	{"CRG", "OUT", "RET"},
	{"OUT", "RET", "OUT", "RET"},
	{"OUT", "RET", "CRG", "OUT"},
	{"RET", "OUT", "RET", "CRG"},
	{"RET", "CRG", "OUT", "RET"},
	{"CRG", "OUT", "RET", "OUT"},
	{"CRG", "OUT", "RET", "CRG"},
	{"OUT", "RET", "OUT", "RET", "CRG"},
	{"OUT", "RET", "CRG", "OUT", "RET"},
	{"RET", "OUT", "RET", "CRG", "OUT"},
	{"RET", "CRG", "OUT", "RET", "OUT"},
	{"RET", "CRG", "OUT", "RET", "CRG"},
	{"CRG", "OUT", "RET", "OUT", "RET"},
	{"CRG", "OUT", "RET", "CRG", "OUT"},
}

var (
	socChoices  = []int{30, 60, 90, 120, 150, 150}
	prevChoices = []model.TaskTag{model.TaskOutbound, model.TaskReturn, model.TaskCharge}
)

// SubproblemDoc is the subproblem section of a merged document.
type SubproblemDoc struct {
	NbrShuttles int                   `json:"nbr_shuttles"`
	Shuttles    map[string]ShuttleDoc `json:"shuttles"`
}

// ShuttleDoc is one S<i> block.
type ShuttleDoc struct {
	Seq      []string `json:"seq"`
	SoC0     int      `json:"soc0"`
	PrevTask string   `json:"prev_task"`
	Delay    int      `json:"delay"`
}

// DemandDoc is the demand section of a merged document.
type DemandDoc struct {
	NReq     int          `json:"nreq"`
	Requests []RequestDoc `json:"requests"`
}

// RequestDoc uses the legacy "time" key, as older masters still do.
type RequestDoc struct {
	Dir  string `json:"dir"`
	Time int    `json:"time"`
}

// GenerateSubproblem draws n random shuttle blocks. One draw in three carries
// a delay between 0 and 30 minutes.
func GenerateSubproblem(rng *rand.Rand, n int) SubproblemDoc {
	doc := SubproblemDoc{NbrShuttles: n, Shuttles: make(map[string]ShuttleDoc, n)}
	for i := 0; i < n; i++ {
		seq := Candidates[rng.Intn(len(Candidates))]
		soc0 := socChoices[rng.Intn(len(socChoices))]
		delay := 0
		if rng.Intn(3) == 2 {
			delay = rng.Intn(31)
		}
		prev := prevChoices[rng.Intn(len(prevChoices))]
		doc.Shuttles[model.ShuttleKey(i)] = ShuttleDoc{
			Seq:      append([]string(nil), seq...),
			SoC0:     soc0,
			PrevTask: prev.String(),
			Delay:    delay,
		}
	}
	return doc
}

// GenerateDemand draws n requests with a random direction and a time in
// [0, horizon].
func GenerateDemand(rng *rand.Rand, n, horizon int) DemandDoc {
	if horizon < 0 {
		horizon = 0
	}
	doc := DemandDoc{NReq: n, Requests: make([]RequestDoc, n)}
	for j := range doc.Requests {
		dir := model.DirOutbound
		if rng.Intn(2) == 1 {
			dir = model.DirReturn
		}
		doc.Requests[j] = RequestDoc{Dir: dir.String(), Time: rng.Intn(horizon + 1)}
	}
	return doc
}
