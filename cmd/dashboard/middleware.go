package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/lobo-bot/lobo/cmd/dashboard/monitoring"
	"github.com/lobo-bot/lobo/pkg/logging"
	"github.com/lobo-bot/lobo/pkg/request"
)

// commandController resolves a slash command to its processor.
type commandController func(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error)

// commandProcessor processes a slash command.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

// componentProcessor processes a component or modal interaction. The arg
// is the part of the custom ID after the colon, such as a panel index.
type componentProcessor func(a IApp, i *discordgo.InteractionCreate, arg string) error

type Controller func(w http.ResponseWriter, r *http.Request)

// httpLimiter bounds the rate of editor API requests across all guilds.
// Autosaves are already debounced client side; this is the backstop.
var httpLimiter = rate.NewLimiter(rate.Limit(25), 50)

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		if !httpLimiter.Allow() {
			cw.WriteHeader(http.StatusTooManyRequests)
			if err := json.NewEncoder(cw).Encode(request.NewMessage("Too many requests")); err != nil {
				a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path // If the route does not define a path, use the URL path.
			}
		} else {
			path = r.URL.Path // If the route is nil, use the URL path.
		}

		defer func() {
			// Run the deferred function after the request has been handled, as the status code will not be available until then.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler routes interactions to their processors. Slash
// commands are routed by command name, components and modals by the name
// part of their custom ID.
func interactionHandler(a IApp, slash map[string]commandController, components map[string]componentProcessor, modals map[string]componentProcessor) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			name := i.ApplicationCommandData().Name
			controller, ok := slash[name]
			if !ok {
				a.Log().Error("No controller found for command", slog.String("command", name))
				if err := respondError(a, i); err != nil {
					a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
				return
			}

			processor, err := controller(a, i)
			if err != nil {
				a.Log().Error(fmt.Sprintf("Error getting processor for command %s", name), slog.String(logging.KeyError, err.Error()))
				if err := respondError(a, i); err != nil {
					a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
				return
			} else if processor == nil {
				// The controller handled the interaction itself.
				return
			}

			if err := processor(a, i); err != nil {
				a.Log().Error(fmt.Sprintf("Error processing command %s", name), slog.String(logging.KeyError, err.Error()))
				if err := respondError(a, i); err != nil {
					a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
			}
		case discordgo.InteractionMessageComponent:
			name, arg := splitCustomID(i.MessageComponentData().CustomID)
			processor, ok := components[name]
			if !ok {
				a.Log().Error("No processor found for component", slog.String("component", name))
				return
			}

			if err := processor(a, i, arg); err != nil {
				a.Log().Error(fmt.Sprintf("Error processing component %s", name), slog.String(logging.KeyError, err.Error()))
				if err := respondError(a, i); err != nil {
					a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
			}
		case discordgo.InteractionModalSubmit:
			name, arg := splitCustomID(i.ModalSubmitData().CustomID)
			processor, ok := modals[name]
			if !ok {
				a.Log().Error("No processor found for modal", slog.String("modal", name))
				return
			}

			if err := processor(a, i, arg); err != nil {
				a.Log().Error(fmt.Sprintf("Error processing modal %s", name), slog.String(logging.KeyError, err.Error()))
				if err := respondError(a, i); err != nil {
					a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
			}
		}
	}
}
