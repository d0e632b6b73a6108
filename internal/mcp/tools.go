package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/srcnav/internal/navigator"
)

const (
	toolComponentFileList = "get_component_file_list"
	toolFileCode          = "get_file_code"
	toolFunctionCode      = "get_function_code"
)

// Navigator is the navigation surface the tools need.
type Navigator interface {
	ListFiles(ctx context.Context, component, packageName string) (*navigator.FileList, error)
	GetFile(ctx context.Context, virtualPath string, fullBody bool) (*navigator.FileView, error)
	GetFunction(ctx context.Context, virtualPath, name string) (*navigator.FunctionView, error)
}

// ToolOptions carries descriptive values shown in tool descriptions.
type ToolOptions struct {
	DefaultPackage string
	LineThreshold  int
	Placeholder    string
}

// AddComponentFileListTool registers the get_component_file_list tool.
func AddComponentFileListTool(s *server.MCPServer, nav Navigator, opts ToolOptions) {
	tool := mcp.NewTool(
		toolComponentFileList,
		mcp.WithDescription(fmt.Sprintf(`List every source file of a component in %[1]s.

Paths are virtual: the package name followed by the path inside the package, e.g.
- %[1]s/Button/index.tsx
- %[1]s/Button/style/index.scss

Typical flow:
1. call this tool to see a component's files
2. call get_file_code on the files of interest
3. call get_function_code for a specific function's implementation`, opts.DefaultPackage)),
		mcp.WithString("componentName",
			mcp.Required(),
			mcp.Description("Component name such as Button, DatePicker or Modal (case-insensitive)")),
		mcp.WithString("packageName",
			mcp.Description(fmt.Sprintf("npm package name, default %q", opts.DefaultPackage))),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createComponentFileListHandler(nav))
}

func createComponentFileListHandler(nav Navigator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		component, err := parseStringArg(argsMap, "componentName", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		packageName, err := parseStringArg(argsMap, "packageName", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		list, err := nav.ListFiles(ctx, component, packageName)
		if err != nil {
			return toolError("failed to list component files", err), nil
		}

		return mcp.NewToolResultText(list.Text()), nil
	}
}

// AddFileCodeTool registers the get_file_code tool.
func AddFileCodeTool(s *server.MCPServer, nav Navigator, opts ToolOptions) {
	tool := mcp.NewTool(
		toolFileCode,
		mcp.WithDescription(fmt.Sprintf(`Read a component source file by its virtual path (as returned by get_component_file_list).

Default behavior:
- .ts/.tsx/.js/.jsx files with %[1]d lines or more: function bodies are replaced with %[2]q so only the structure is shown
- shorter script files: full source
- other files (.scss etc.): full content

Set fullCode to get the complete source including function bodies.

Example paths:
- %[3]s/Button/index.tsx
- %[3]s/DatePicker/style/index.scss`, opts.LineThreshold, opts.Placeholder, opts.DefaultPackage)),
		mcp.WithString("filePath",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Virtual file path, e.g. %s/Button/index.tsx", opts.DefaultPackage))),
		mcp.WithBoolean("fullCode",
			mcp.Description("Return the complete source including function bodies (default false)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFileCodeHandler(nav))
}

func createFileCodeHandler(nav Navigator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		filePath, err := parseStringArg(argsMap, "filePath", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fullCode := parseBoolArg(argsMap, "fullCode", false)

		view, err := nav.GetFile(ctx, filePath, fullCode)
		if err != nil {
			return toolError("failed to read file", err), nil
		}

		return mcp.NewToolResultText(view.Text()), nil
	}
}

// AddFunctionCodeTool registers the get_function_code tool.
func AddFunctionCodeTool(s *server.MCPServer, nav Navigator, opts ToolOptions) {
	tool := mcp.NewTool(
		toolFunctionCode,
		mcp.WithDescription(fmt.Sprintf(`Return the complete implementation of one named function in a component file.

Supported forms:
- function declarations: function foo() {}
- arrow functions: const foo = () => {}
- class methods: class Foo { bar() {} }
- getters and setters: get foo() {} / set foo(v) {}
- object methods and function-valued properties

When several functions share the name, the first in the file is returned.

Example paths:
- %[1]s/Button/index.tsx
- %[1]s/Table/Table.tsx`, opts.DefaultPackage)),
		mcp.WithString("filePath",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Virtual file path, e.g. %s/Table/Table.tsx", opts.DefaultPackage))),
		mcp.WithString("functionName",
			mcp.Required(),
			mcp.Description("Function or method name, e.g. render or handleClick (case-sensitive)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFunctionCodeHandler(nav))
}

func createFunctionCodeHandler(nav Navigator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		filePath, err := parseStringArg(argsMap, "filePath", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		functionName, err := parseStringArg(argsMap, "functionName", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		fn, err := nav.GetFunction(ctx, filePath, functionName)
		if err != nil {
			return toolError("failed to get function", err), nil
		}

		return mcp.NewToolResultText(fn.Text()), nil
	}
}
