package main

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	bibinject "github.com/alnah/go-bibinject"
)

//go:embed webui.html
var webUI embed.FS

// uploadLimit caps multipart uploads for the web interface.
const uploadLimit = 16 << 20 // 16MB

// uiData holds the values needed to populate the web interface form.
type uiData struct {
	Styles       []string
	OrderOptions []string
	GroupOptions []string
	Error        string
}

// runServe starts the web interface: an upload form on GET / and the
// pipeline on POST /inject.
func runServe(args []string) error {
	flags, err := parseServeFlags(args)
	if err != nil {
		return err
	}

	// A .env file may provide BIBINJECT_ADDR; absence is not an error.
	_ = godotenv.Load()

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	addr := cfg.Serve.Addr
	if env := os.Getenv("BIBINJECT_ADDR"); env != "" {
		addr = env
	}
	if flags.addr != "" {
		addr = flags.addr
	}
	if flags.assetPath == "" {
		flags.assetPath = cfg.Assets.BasePath
	}

	logger, err := newLogger(flags.common.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	inj, err := bibinject.New(
		bibinject.WithLogger(logger),
		bibinject.WithAssetPath(flags.assetPath),
		bibinject.WithMacroExpansion(cfg.Inject.ExpandStrings),
	)
	if err != nil {
		return err
	}

	router, err := newRouter(inj, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Starting bibinject web interface on http://%s\n", addr)
	return router.Run(addr)
}

// newRouter builds the gin engine serving the form and the pipeline.
func newRouter(inj *bibinject.Injector, logger *zap.SugaredLogger) (*gin.Engine, error) {
	page, err := template.ParseFS(webUI, "webui.html")
	if err != nil {
		return nil, fmt.Errorf("parsing web UI template: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = uploadLimit
	router.SetHTMLTemplate(page)

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "webui.html", formData(inj, ""))
	})

	router.POST("/inject", func(c *gin.Context) {
		result, err := handleInject(c, inj)
		if err != nil {
			logger.Warnf("inject request failed: %v", err)
			c.HTML(http.StatusUnprocessableEntity, "webui.html", formData(inj, err.Error()))
			return
		}

		c.Header("Content-Disposition", `attachment; filename="injected.html"`)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result))
	})

	return router, nil
}

// formData assembles the form's dropdown values.
func formData(inj *bibinject.Injector, errMsg string) uiData {
	styles, err := inj.Styles()
	if err != nil {
		styles = nil
	}
	return uiData{
		Styles:       styles,
		OrderOptions: []string{bibinject.OrderAsc, bibinject.OrderDesc},
		GroupOptions: []string{"", bibinject.GroupYear, bibinject.GroupYearMonth, bibinject.GroupMonth, bibinject.GroupAuthor},
		Error:        errMsg,
	}
}

// handleInject reads the uploaded bibliography and host document and
// runs the pipeline with the submitted options.
func handleInject(c *gin.Context, inj *bibinject.Injector) (string, error) {
	bibText, err := readUpload(c, "bibliography")
	if err != nil {
		return "", fmt.Errorf("reading bibliography upload: %w", err)
	}
	hostHTML, err := readUpload(c, "template")
	if err != nil {
		return "", fmt.Errorf("reading template upload: %w", err)
	}

	return inj.Run(c.Request.Context(), bibinject.Input{
		HostHTML: hostHTML,
		BibText:  bibText,
		Style:    c.PostForm("style"),
		Order:    c.PostForm("order"),
		Group:    c.PostForm("group"),
		TargetID: c.PostForm("target_id"),
		DOIIcon:  c.PostForm("doi_icon"),
	})
}

// readUpload returns the content of one multipart file field.
func readUpload(c *gin.Context, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, uploadLimit))
	if err != nil {
		return "", err
	}
	return string(content), nil
}
