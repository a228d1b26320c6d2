package engine

import "fmt"

// marketeerSlots is how many marketing campaigns can run at once.
const marketeerSlots = 3

// Marketeer ranks and their campaign durations in turns. Rural Marketeer
// campaigns never expire.
const (
	MarketeerTrainee        = "Marketing Trainee"
	MarketeerCampaignMgr    = "Campaign Manager"
	MarketeerBrandMgr       = "Brand Manager"
	MarketeerBrandDirector  = "Brand Director"
	MarketeerGourmetCritic  = "Gourmet Food Critic"
	MarketeerRural          = "Rural Marketeer"
	permanentCampaignMarker = -1
)

var marketeerDurations = map[string]int{
	MarketeerTrainee:       2,
	MarketeerCampaignMgr:   3,
	MarketeerBrandMgr:      4,
	MarketeerBrandDirector: 5,
	MarketeerGourmetCritic: 3,
	MarketeerRural:         permanentCampaignMarker,
}

// Campaign is one running marketing campaign.
type Campaign struct {
	Slot      int      `json:"slot"`
	Rank      string   `json:"rank"`
	Item      FoodItem `json:"item"`
	TurnsLeft int      `json:"turns_left"` // -1 means permanent
	Tile      int      `json:"tile"`
}

// Permanent reports whether the campaign never expires.
func (c *Campaign) Permanent() bool { return c.TurnsLeft == permanentCampaignMarker }

// MarketeerPool manages the three campaign slots.
type MarketeerPool struct {
	Campaigns []*Campaign `json:"campaigns"`
}

// NewMarketeerPool returns an empty pool.
func NewMarketeerPool() *MarketeerPool {
	return &MarketeerPool{}
}

// freeSlot returns the lowest unoccupied slot index, or -1 when all three
// are busy.
func (p *MarketeerPool) freeSlot() int {
	used := [marketeerSlots]bool{}
	for _, c := range p.Campaigns {
		if c.Slot >= 0 && c.Slot < marketeerSlots {
			used[c.Slot] = true
		}
	}
	for i := 0; i < marketeerSlots; i++ {
		if !used[i] {
			return i
		}
	}
	return -1
}

// Launch starts a campaign of the given rank for item in the first free
// slot. When the pool is full the launch is skipped and ok is false.
func (p *MarketeerPool) Launch(rank string, item FoodItem, tile int) (*Campaign, bool, error) {
	dur, known := marketeerDurations[rank]
	if !known {
		return nil, false, fmt.Errorf("%w: unknown marketeer rank %q", ErrValidation, rank)
	}
	slot := p.freeSlot()
	if slot < 0 {
		return nil, false, nil
	}
	c := &Campaign{Slot: slot, Rank: rank, Item: item, TurnsLeft: dur, Tile: tile}
	p.Campaigns = append(p.Campaigns, c)
	return c, true, nil
}

// Tick ages every running campaign one turn and removes the expired ones,
// returning them so the caller can report the removals.
func (p *MarketeerPool) Tick() []*Campaign {
	var expired []*Campaign
	kept := p.Campaigns[:0]
	for _, c := range p.Campaigns {
		if c.Permanent() {
			kept = append(kept, c)
			continue
		}
		c.TurnsLeft--
		if c.TurnsLeft <= 0 {
			expired = append(expired, c)
			continue
		}
		kept = append(kept, c)
	}
	p.Campaigns = kept
	return expired
}

// FireAll removes every campaign, permanent ones included. Competition
// cards with a fire_employees effect call this.
func (p *MarketeerPool) FireAll() []*Campaign {
	fired := p.Campaigns
	p.Campaigns = nil
	return fired
}

// Active returns the running campaigns for the named item.
func (p *MarketeerPool) Active(item FoodItem) []*Campaign {
	var out []*Campaign
	for _, c := range p.Campaigns {
		if c.Item == item {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many campaigns are running.
func (p *MarketeerPool) Count() int { return len(p.Campaigns) }

// Clone returns a deep copy of the pool.
func (p *MarketeerPool) Clone() *MarketeerPool {
	out := &MarketeerPool{Campaigns: make([]*Campaign, 0, len(p.Campaigns))}
	for _, c := range p.Campaigns {
		cp := *c
		out.Campaigns = append(out.Campaigns, &cp)
	}
	return out
}

// Notable employee names the card catalog recruits by target. Anything
// else drawn onto a recruit_employee slot goes to the pile unexamined.
const (
	EmployeeKimchiMaster = "Kimchi Master"
	EmployeeBurgerChef   = "Burger Chef"
	EmployeeZeppelin     = "Zeppelin Pilot"
)

// movieStarRanks is the recruitment order when the waitress track tops
// out, best rank first.
var movieStarRanks = []string{"B", "C", "D"}

// EmployeePool holds the automa's recruited employees. Brand Directors
// never land here; they launch a campaign instead.
type EmployeePool struct {
	Employees []string `json:"employees"`
}

// NewEmployeePool returns an empty pool.
func NewEmployeePool() *EmployeePool { return &EmployeePool{} }

// Add appends the named employee to the pile.
func (p *EmployeePool) Add(name string) {
	p.Employees = append(p.Employees, name)
}

// Has reports whether an employee with the given name is in the pile.
func (p *EmployeePool) Has(name string) bool {
	for _, e := range p.Employees {
		if e == name {
			return true
		}
	}
	return false
}

// FireAll empties the pile and returns who was let go.
func (p *EmployeePool) FireAll() []string {
	fired := p.Employees
	p.Employees = nil
	return fired
}

// Count returns how many employees are in the pile.
func (p *EmployeePool) Count() int { return len(p.Employees) }

// Clone returns a deep copy of the pool.
func (p *EmployeePool) Clone() *EmployeePool {
	out := &EmployeePool{Employees: make([]string, len(p.Employees))}
	copy(out.Employees, p.Employees)
	return out
}

// Restaurant is one placed automa restaurant.
type Restaurant struct {
	Tile     int  `json:"tile"`
	HasDrive bool `json:"has_drive"`
}

// defaultRestaurantCap is the base-game restaurant limit; the extended
// setup doubles it.
const defaultRestaurantCap = 3

// RestaurantSet tracks the automa's placed restaurants up to its cap.
type RestaurantSet struct {
	Restaurants []Restaurant `json:"restaurants"`
	Cap         int          `json:"cap"`
}

// NewRestaurantSet returns an empty set, at double the base cap when the
// extended setup is in play.
func NewRestaurantSet(extended bool) *RestaurantSet {
	cap := defaultRestaurantCap
	if extended {
		cap = defaultRestaurantCap * 2
	}
	return &RestaurantSet{Cap: cap}
}

// Place adds a restaurant on the given tile. When the set is full the
// placement is skipped and ok is false.
func (r *RestaurantSet) Place(tile int, drive bool) bool {
	if len(r.Restaurants) >= r.Cap {
		return false
	}
	r.Restaurants = append(r.Restaurants, Restaurant{Tile: tile, HasDrive: drive})
	return true
}

// StripDriveIns removes every drive-in marker. Competition cards with a
// no_driveins effect call this.
func (r *RestaurantSet) StripDriveIns() int {
	n := 0
	for i := range r.Restaurants {
		if r.Restaurants[i].HasDrive {
			r.Restaurants[i].HasDrive = false
			n++
		}
	}
	return n
}

// Count returns how many restaurants are placed.
func (r *RestaurantSet) Count() int { return len(r.Restaurants) }

// Full reports whether the cap is reached.
func (r *RestaurantSet) Full() bool { return len(r.Restaurants) >= r.Cap }

// Clone returns a deep copy of the set.
func (r *RestaurantSet) Clone() *RestaurantSet {
	out := &RestaurantSet{Cap: r.Cap, Restaurants: make([]Restaurant, len(r.Restaurants))}
	copy(out.Restaurants, r.Restaurants)
	return out
}

// MilestoneSet tracks claimed milestone names. First claim wins; repeats
// are no-ops.
type MilestoneSet struct {
	Claimed []string `json:"claimed"`
}

// NewMilestoneSet returns an empty set.
func NewMilestoneSet() *MilestoneSet { return &MilestoneSet{} }

// Claim records the milestone and reports whether it was newly claimed.
func (m *MilestoneSet) Claim(name string) bool {
	for _, c := range m.Claimed {
		if c == name {
			return false
		}
	}
	m.Claimed = append(m.Claimed, name)
	return true
}

// Has reports whether the milestone was claimed.
func (m *MilestoneSet) Has(name string) bool {
	for _, c := range m.Claimed {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the set.
func (m *MilestoneSet) Clone() *MilestoneSet {
	out := &MilestoneSet{Claimed: make([]string, len(m.Claimed))}
	copy(out.Claimed, m.Claimed)
	return out
}
