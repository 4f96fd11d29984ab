package matching

import (
	"sort"

	"mentor-collab/internal/domain"
)

type categorySet map[string]struct{}

// traitSet guarda las categorias de una mentoria por polaridad. Las listas
// estan ordenadas para que los cruces salgan ordenados.
type traitSet struct {
	strengths    categorySet
	weaknesses   categorySet
	strengthList []string
	weaknessList []string
}

var emptyTraitSet = &traitSet{strengths: categorySet{}, weaknesses: categorySet{}}

// TraitIndex indexa los rasgos de todas las mentorias en un arena contiguo.
// Es inmutable despues de construido.
type TraitIndex struct {
	slots map[string]int
	arena []traitSet
}

func NewTraitIndex(traits map[string][]domain.Trait) *TraitIndex {
	ids := make([]string, 0, len(traits))
	for id := range traits {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	idx := &TraitIndex{
		slots: make(map[string]int, len(ids)),
		arena: make([]traitSet, 0, len(ids)),
	}
	for _, id := range ids {
		set := traitSet{strengths: categorySet{}, weaknesses: categorySet{}}
		for _, t := range traits[id] {
			switch t.Polarity {
			case domain.PolarityStrength:
				set.strengths[t.Category] = struct{}{}
				set.strengthList = append(set.strengthList, t.Category)
			case domain.PolarityWeakness:
				set.weaknesses[t.Category] = struct{}{}
				set.weaknessList = append(set.weaknessList, t.Category)
			}
		}
		sort.Strings(set.strengthList)
		sort.Strings(set.weaknessList)
		idx.slots[id] = len(idx.arena)
		idx.arena = append(idx.arena, set)
	}
	return idx
}

func (x *TraitIndex) set(mentorshipID string) *traitSet {
	if x == nil {
		return emptyTraitSet
	}
	slot, ok := x.slots[mentorshipID]
	if !ok {
		return emptyTraitSet
	}
	return &x.arena[slot]
}

func (x *TraitIndex) Strengths(mentorshipID string) []string {
	return cloneStrings(x.set(mentorshipID).strengthList)
}

func (x *TraitIndex) Weaknesses(mentorshipID string) []string {
	return cloneStrings(x.set(mentorshipID).weaknessList)
}

// intersect devuelve los elementos de list presentes en set, respetando el orden de list.
func intersect(list []string, set categorySet) []string {
	var out []string
	for _, c := range list {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
