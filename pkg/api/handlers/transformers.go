package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v3"
)

// TransformerInfo describes one registered transformation rule
type TransformerInfo struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

// ListTransformers handles GET /api/v1/transformers
func (s *Server) ListTransformers(c fiber.Ctx) error {
	rules := s.registry.Transformers()
	infos := make([]TransformerInfo, 0, len(rules))

	for key, rule := range rules {
		info := TransformerInfo{Key: key}
		if rule != nil {
			info.Kind = string(rule.Kind())
			info.Name = rule.Name()
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Key < infos[j].Key
	})

	response := map[string]interface{}{
		"transformers": infos,
		"total":        len(infos),
	}

	return s.respond(c, fiber.StatusOK, response)
}
