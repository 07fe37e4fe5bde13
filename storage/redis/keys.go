package redis

import "fmt"

func (s *Store) playerKey(id int64) string {
	return fmt.Sprintf("%s:player:%d", s.cfg.KeyPrefix, id)
}

// idsKey is the SET of every stored player id
func (s *Store) idsKey() string {
	return s.cfg.KeyPrefix + ":ids"
}

// seqKey is the counter new ids are drawn from
func (s *Store) seqKey() string {
	return s.cfg.KeyPrefix + ":seq"
}
