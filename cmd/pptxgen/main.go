package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/showcase-pro/pptx-demo-backend/internal/extract"
	"github.com/showcase-pro/pptx-demo-backend/internal/imageres"
	"github.com/showcase-pro/pptx-demo-backend/internal/markup"
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
	"github.com/showcase-pro/pptx-demo-backend/internal/render"
	"github.com/showcase-pro/pptx-demo-backend/internal/service"
	"github.com/showcase-pro/pptx-demo-backend/pkg/config"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
	"github.com/showcase-pro/pptx-demo-backend/pkg/util"
)

var errNoInput = errors.New("either --input or --html is required")

type options struct {
	input      string
	html       string
	output     string
	configFile string
	dump       string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("参数错误: %v", err)
	}

	if err := config.Init(opts.configFile); err != nil {
		log.Fatalf("初始化配置失败: %v", err)
	}
	logger.Init()
	defer logger.Sync()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Fatalf("转换失败: %v", err)
	}
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("pptxgen", pflag.ContinueOnError)
	fs.StringVarP(&opts.input, "input", "i", "", "幻灯片JSON文件")
	fs.StringVar(&opts.html, "html", "", "先从HTML文件中提取幻灯片")
	fs.StringVarP(&opts.output, "output", "o", "presentation.pptx", "输出文件路径")
	fs.StringVarP(&opts.configFile, "config", "c", "config.yaml", "配置文件路径")
	fs.StringVar(&opts.dump, "dump", "", "将文档结构写入JSON文件")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.input == "" && opts.html == "" {
		return nil, errNoInput
	}
	return opts, nil
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	req, err := loadRequest(ctx, opts)
	if err != nil {
		return err
	}

	resolver := imageres.New(imageres.Config{
		Timeout:   config.GetSeconds("image.fetch_timeout"),
		MaxBytes:  config.GetInt64("image.max_bytes"),
		UserAgent: config.GetString("image.user_agent"),
	})
	renderer := render.New(render.Config{
		Defaults: model.Options{
			Author:   config.GetString("presentation.author"),
			Company:  config.GetString("presentation.company"),
			Title:    config.GetString("presentation.title"),
			Subject:  config.GetString("presentation.subject"),
			Revision: config.GetString("presentation.revision"),
		},
		MaxImageBytes: config.GetInt64("image.max_bytes"),
	}, resolver)

	req.Options.ID = util.NewIDString()
	pres, err := renderer.Render(ctx, req.Slides, req.Options)
	if err != nil {
		return err
	}

	data, err := pres.Bytes()
	if err != nil {
		return err
	}
	if err := util.SaveFile(opts.output, data); err != nil {
		return err
	}
	if opts.dump != "" {
		if err := pres.DumpStructure(opts.dump); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(out, "wrote %d slides to %s\n", len(pres.Slides()), opts.output)
	return err
}

// loadRequest 读取JSON幻灯片文件，或从HTML中提取
func loadRequest(ctx context.Context, opts *options) (*service.ConvertRequest, error) {
	if opts.html == "" {
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return nil, err
		}
		return service.DecodeSlideFile(data)
	}

	data, err := os.ReadFile(opts.html)
	if err != nil {
		return nil, err
	}
	parser, err := markup.New(markup.Config{
		Engine:     config.GetString("extract.engine"),
		BrowserBin: config.GetString("extract.browser_bin"),
	})
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	slides, err := extract.New(parser).Extract(ctx, string(data))
	if err != nil {
		return nil, err
	}
	logger.Info("从HTML中提取幻灯片", logger.F("file", opts.html), logger.F("count", len(slides)))
	return &service.ConvertRequest{Slides: slides}, nil
}
