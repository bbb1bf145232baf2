// inkctl: CLI para operar un board inkboard desde la terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/inkboard/internal/board"
	"github.com/dropDatabas3/inkboard/internal/client"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func main() {
	var (
		baseURL = envOr("INKBOARD_URL", "http://localhost:8080")
		userID  = envOr("INKBOARD_USER", "inkctl")
		token   = envOr("INKBOARD_TOKEN", "")
	)

	root := &cobra.Command{
		Use:   "inkctl",
		Short: "CLI para el board compartido (vía /api/board)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("falta userId (flag --user o env INKBOARD_USER)")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del server (env INKBOARD_URL)")
	root.PersistentFlags().StringVar(&userID, "user", userID, "authorId para las mutaciones (env INKBOARD_USER)")
	root.PersistentFlags().StringVar(&token, "token", token, "session token opcional (env INKBOARD_TOKEN)")

	newClient := func() *client.Client {
		c := client.NewClient(baseURL, userID)
		c.Token = token
		return c
	}

	// fetch
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Traer el snapshot completo del canvas",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Fetch(cmd.Context())
			if err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}

	// online
	onlineCmd := &cobra.Command{
		Use:   "online",
		Short: "Listar participantes presentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Fetch(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range resp.Online {
				fmt.Println(u)
			}
			return nil
		},
	}

	// shape
	var shapeType string
	var shapeX, shapeY, shapeW, shapeH float64
	var shapeColor, shapeText string
	shapeCmd := &cobra.Command{
		Use:   "shape",
		Short: "Colocar un shape en el canvas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !board.ValidShapeType(shapeType) {
				return fmt.Errorf("shape type inválido: %q", shapeType)
			}
			rec := board.Record{
				Kind:      board.KindShape,
				ShapeType: shapeType,
				X:         shapeX,
				Y:         shapeY,
				Width:     shapeW,
				Height:    shapeH,
				Color:     shapeColor,
				Text:      shapeText,
			}
			if err := newClient().Submit(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	shapeCmd.Flags().StringVar(&shapeType, "type", board.ShapeRectangle, "rectangle|circle|triangle|star|heart|arrow|line|text")
	shapeCmd.Flags().Float64Var(&shapeX, "x", 0, "posición x")
	shapeCmd.Flags().Float64Var(&shapeY, "y", 0, "posición y")
	shapeCmd.Flags().Float64Var(&shapeW, "width", 50, "ancho")
	shapeCmd.Flags().Float64Var(&shapeH, "height", 50, "alto")
	shapeCmd.Flags().StringVar(&shapeColor, "color", "#000000", "color")
	shapeCmd.Flags().StringVar(&shapeText, "text", "", "contenido (solo shapes text)")

	// move
	var moveID string
	var moveX, moveY float64
	moveCmd := &cobra.Command{
		Use:   "move",
		Short: "Mover un shape por id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if moveID == "" {
				return fmt.Errorf("--id es requerido")
			}
			if err := newClient().MoveShape(cmd.Context(), moveID, moveX, moveY); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	moveCmd.Flags().StringVar(&moveID, "id", "", "shape id")
	moveCmd.Flags().Float64Var(&moveX, "x", 0, "nueva posición x")
	moveCmd.Flags().Float64Var(&moveY, "y", 0, "nueva posición y")

	// delete
	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Borrar un shape por id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deleteID == "" {
				return fmt.Errorf("--id es requerido")
			}
			if err := newClient().DeleteShape(cmd.Context(), deleteID); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "shape id")

	// clear
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Limpiar el canvas completo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}

	// watch: reconcilia en loop e imprime cada snapshot que cambia
	var watchInterval time.Duration
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Seguir el canvas en vivo (polling)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rec := client.NewReconciler(newClient(), watchInterval)
			var lastCount int
			var lastOnline int
			rec.OnSnapshot = func(recs []board.Record, online []string) {
				if len(recs) == lastCount && len(online) == lastOnline {
					return
				}
				lastCount, lastOnline = len(recs), len(online)
				fmt.Printf("%s records=%d online=%d\n",
					time.Now().Format(time.TimeOnly), len(recs), len(online))
			}

			if err := rec.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	watchCmd.Flags().DurationVar(&watchInterval, "interval", client.DefaultPollInterval, "intervalo de polling")

	root.AddCommand(fetchCmd, onlineCmd, shapeCmd, moveCmd, deleteCmd, clearCmd, watchCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
