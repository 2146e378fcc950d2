package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fosdem/trigon/lib/theatre"
)

type ObjectInfo struct {
	Name        string `json:"name" example:"bottom"`
	VertexCount int    `json:"vertex_count" example:"3"`
	Mode        string `json:"mode" example:"triangles"`
	Program     string `json:"program" example:"red"`
}

// describeObjects takes the object list once at startup, since objects are
// owned by the render thread and never change afterwards.
func describeObjects(t *theatre.Theatre) []ObjectInfo {
	infos := make([]ObjectInfo, 0, len(t.Objects))
	for _, obj := range t.Objects {
		info := ObjectInfo{
			Name:        obj.Name(),
			VertexCount: obj.VertexCount(),
			Mode:        obj.Mode().String(),
		}
		if p := obj.Program(); p != nil {
			info.Program = p.Name()
		}
		infos = append(infos, info)
	}
	return infos
}

// @Summary	List the objects in draw order
// @Router		/api/objects [get]
// @Tags		base
// @Produce	json
// @Success	200	{array}	ObjectInfo
func (a *Api) handleObjects(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.objects)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode objects: %s", err), http.StatusInternalServerError)
		return
	}
}
