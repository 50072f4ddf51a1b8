package web

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mogaika/scenegraph/logging"
	"github.com/mogaika/scenegraph/utils"
	"github.com/mogaika/scenegraph/utils/fbxbuilder"
	"github.com/mogaika/scenegraph/utils/gltfutils"
	"github.com/mogaika/scenegraph/webutils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (i *Inspector) HandlerJsonScene(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, i.Tree())
}

func (i *Inspector) HandlerJsonNode(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["node"]
	if info := i.Node(name); info == nil {
		webutils.WriteError(w, http.StatusNotFound, errors.Errorf("node %q not found", name))
	} else {
		webutils.WriteJson(w, info)
	}
}

func (i *Inspector) HandlerJsonFrame(w http.ResponseWriter, r *http.Request) {
	report, err := i.RenderFrame()
	if err != nil {
		webutils.WriteError(w, http.StatusInternalServerError, errors.Wrapf(err, "render"))
		return
	}
	webutils.WriteJson(w, report)
}

func (i *Inspector) HandlerExportScene(w http.ResponseWriter, r *http.Request) {
	format := mux.Vars(r)["format"]
	name := "scene." + format

	var buf bytes.Buffer
	var err error

	i.lock.Lock()
	switch format {
	case "fbx":
		err = fbxbuilder.ExportScene(i.scene, name).Write(&buf)
	case "glb":
		err = gltfutils.ExportBinary(&buf, gltfutils.ExportScene(i.scene))
	default:
		err = gltfutils.ExportJSON(&buf, gltfutils.ExportScene(i.scene))
	}
	i.lock.Unlock()

	if err != nil {
		webutils.WriteError(w, http.StatusInternalServerError, errors.Wrapf(err, "export %s", name))
		return
	}
	webutils.WriteFile(w, &buf, name)
}

func (i *Inspector) HandlerDumpScene(w http.ResponseWriter, r *http.Request) {
	i.lock.Lock()
	defer i.lock.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	utils.FDumpScene(w, i.scene)
}

func (i *Inspector) HandlerWsFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.From(r.Context()).Named("web").Warn("Upgrade failed", zap.Error(err))
		return
	}
	i.hub.Register(conn)
}
