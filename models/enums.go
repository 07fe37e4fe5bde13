package models

type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

func (r Race) Valid() bool {
	switch r {
	case RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit:
		return true
	}
	return false
}

type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

func (p Profession) Valid() bool {
	switch p {
	case ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
		ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid:
		return true
	}
	return false
}

// PlayerOrder is the field a player list is sorted by.
type PlayerOrder string

const (
	OrderID         PlayerOrder = "ID"
	OrderName       PlayerOrder = "NAME"
	OrderExperience PlayerOrder = "EXPERIENCE"
	OrderBirthday   PlayerOrder = "BIRTHDAY"
	OrderLevel      PlayerOrder = "LEVEL"
)

func (o PlayerOrder) Valid() bool {
	switch o {
	case OrderID, OrderName, OrderExperience, OrderBirthday, OrderLevel:
		return true
	}
	return false
}
