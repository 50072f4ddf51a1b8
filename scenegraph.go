package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mogaika/scenegraph/config"
	"github.com/mogaika/scenegraph/logging"
	"github.com/mogaika/scenegraph/r3d"
	"github.com/mogaika/scenegraph/render"
	"github.com/mogaika/scenegraph/status"
	"github.com/mogaika/scenegraph/utils"
	"github.com/mogaika/scenegraph/utils/fbxbuilder"
	"github.com/mogaika/scenegraph/utils/gltfutils"
	"github.com/mogaika/scenegraph/web"
)

func main() {
	var addr, scenePath, exportPath string
	var dump, frame, dev bool
	var fps int
	var orbitSpeed float64
	flag.StringVar(&scenePath, "scene", "", "Path to yaml scene description")
	flag.StringVar(&addr, "i", "", "Address of inspector server, empty to disable")
	flag.StringVar(&exportPath, "export", "", "Export scene to .glb, .gltf or .fbx file")
	flag.BoolVar(&dump, "dump", false, "Dump scene tree to stdout")
	flag.BoolVar(&frame, "frame", false, "Render one frame and print draw calls as json")
	flag.BoolVar(&dev, "dev", false, "Debug logging")
	flag.IntVar(&fps, "fps", 10, "Frames per second broadcast to websocket clients")
	flag.Float64Var(&orbitSpeed, "orbit", 30, "Camera orbit speed in degrees per second")
	flag.Parse()

	if dev {
		logging.SetRoot(logging.New(true))
	}
	log := logging.Root()
	defer log.Sync()

	if scenePath == "" {
		flag.PrintDefaults()
		return
	}

	desc, err := config.LoadFile(scenePath)
	if err != nil {
		log.Fatal("Failed to load scene", zap.Error(err))
	}

	queue := &render.Queue{}
	factory := func(name string) r3d.Drawable {
		return render.Logged(queue.Drawable(name), log.Named("draw").With(zap.String("node", name)))
	}
	scene, err := desc.Build(factory)
	if err != nil {
		log.Fatal("Failed to build scene", zap.Error(err))
	}
	defer scene.Release()
	log.Info("Scene loaded", zap.String("path", scenePath), zap.Int("nodes", scene.Count()))

	if dump {
		utils.FDumpScene(os.Stdout, scene)
	}

	if exportPath != "" {
		if err := exportScene(scene, exportPath); err != nil {
			log.Fatal("Failed to export scene", zap.Error(err))
		}
		log.Info("Scene exported", zap.String("path", exportPath))
	}

	hub := status.NewHub()
	inspector := web.NewInspector(scene, queue, hub)

	if frame {
		report, err := inspector.RenderFrame()
		if err != nil {
			log.Fatal("Failed to render frame", zap.Error(err))
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			log.Fatal("Failed to write frame", zap.Error(err))
		}
	}

	if addr == "" {
		return
	}
	if fps <= 0 {
		fps = 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = logging.Context(ctx, log)

	go hub.Run(ctx)
	go inspector.Animate(ctx, time.Second/time.Duration(fps), float32(orbitSpeed))

	if err := web.StartServer(ctx, addr, inspector); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

// exportScene picks the exporter from the file extension.
func exportScene(scene *r3d.Scene, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".fbx") {
		return fbxbuilder.ExportScene(scene, path).Save(path)
	}
	return gltfutils.Save(gltfutils.ExportScene(scene), path)
}
